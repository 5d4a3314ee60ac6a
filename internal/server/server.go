// server.go
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

package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/handlers"
	"github.com/localnerve/pcnodetree/internal/middleware"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/localnerve/pcnodetree/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/localnerve/pcnodetree/docs/api" // Swagger docs
)

// Options tunes the app for embedding and tests
type Options struct {
	// AccessLog enables the Fiber request logger
	AccessLog bool
	// Metrics registers the Prometheus middleware and /metrics
	Metrics bool
}

// New builds the Fiber app with all routes registered
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, opts Options) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "pcnodetree",
		ErrorHandler:          handlers.ErrorHandler(cfg.IsDevelopment(), log),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())

	// Prometheus metrics
	if opts.Metrics {
		prometheus := fiberprometheus.New("pcnodetree")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/api-docs/*", swagger.HandlerDefault)

	// Health
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db, Logger: log}
	app.Get("/health", healthHandler.Health)

	// API routes under /api/v1
	api := app.Group("/api/v1", middleware.Auth(cfg, log), middleware.VersionMiddleware())

	nodeService := services.NewNodeService(repository.New(db), cfg.TreeFanoutLimit, log)
	nodeHandler := &handlers.NodeHandler{Service: nodeService}

	api.Post("/nodes", nodeHandler.CreateNode)
	api.Get("/nodes/:nodeId", nodeHandler.GetSubtree)
	api.Post("/nodes/:nodeId/properties", nodeHandler.AddProperty)
	api.Get("/paths", nodeHandler.ResolvePath)

	// 404 handler
	app.Use(handlers.NotFound)

	return app
}
