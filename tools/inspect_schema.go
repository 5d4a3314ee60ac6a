package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/pcnodetree/internal/database"
	"gorm.io/gorm/logger"
)

// Prints the sqlite DDL produced by the migrations, indexes included
func main() {
	db, err := database.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), logger.Default.LogMode(logger.Silent))
	if err != nil {
		log.Fatal(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var objects []struct {
		Type string
		Name string
		SQL  string
	}
	err = db.Raw("SELECT type, name, sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY tbl_name, type DESC, name").
		Scan(&objects).Error
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range objects {
		fmt.Printf("\n=== %s: %s ===\n%s\n", o.Type, o.Name, o.SQL)
	}
}
