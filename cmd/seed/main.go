// main.go
//
// A hierarchical PC component node tree data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of pcnodetree.
// pcnodetree is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// pcnodetree is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with pcnodetree.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/database"
	"github.com/localnerve/pcnodetree/internal/logging"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/localnerve/pcnodetree/internal/services"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Seed the sample AlphaPC component tree. Safe to run more than once.

Usage:

seed [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (default .env, or $ENV_FILE)
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		if err := os.Setenv("ENV_FILE", envFilename); err != nil {
			log.Fatalf("Failed to set ENV_FILE: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	stats, err := services.Seed(context.Background(), repository.New(db), services.AlphaPC, logger)
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	fmt.Printf("Seeded %s: %d nodes created, %d properties set\n",
		services.AlphaPC.Name, stats.NodesCreated, stats.PropertiesSet)
}
