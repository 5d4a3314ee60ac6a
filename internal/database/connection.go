// connection.go
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

package database

import (
	"fmt"
	"log"
	"strings"

	puresqlite "github.com/glebarez/sqlite"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// RootNameIndex is the partial unique index that keeps root names unique
const RootNameIndex = "idx_nodes_root_name"

// Binary collations for name and key columns
const (
	MySQLBinaryCollation     = "utf8mb4_bin"
	SQLServerBinaryCollation = "Latin1_General_100_BIN2"
)

// binaryColumn is a text column that must compare case sensitively
type binaryColumn struct {
	model  interface{}
	table  string
	column string
	index  string
}

var binaryColumns = []binaryColumn{
	{model: &models.Node{}, table: "nodes", column: "name", index: "idx_nodes_parent_name"},
	{model: &models.Property{}, table: "properties", column: "key", index: "idx_properties_node_key"},
}

// Dialector builds the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
			cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// Pure Go driver, DBDatabase is the file path
		return puresqlite.Open(withPragma(cfg.DBDatabase, "_pragma=foreign_keys(1)")), nil

	case "sqlite3":
		// cgo driver, DBDatabase is the file path
		return sqlite.Open(withPragma(cfg.DBDatabase, "_foreign_keys=on")), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := Open(dialector, logger.Default.LogMode(logLevel))
	if err != nil {
		return nil, err
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))

	log.Printf("Connected to %s database: %s", cfg.DBType, cfg.DBDatabase)

	return db, nil
}

// Open opens a gorm connection with driver error translation enabled, so
// constraint violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Node{}, &models.Property{}); err != nil {
		return err
	}
	if err := ensureBinaryCollation(db); err != nil {
		return err
	}
	return ensureRootNameIndex(db)
}

// ensureBinaryCollation switches name and key columns to a binary collation.
// MySQL and MSSQL create text columns with the server default, which is
// usually case insensitive. Postgres and sqlite compare bytes already.
func ensureBinaryCollation(db *gorm.DB) error {
	dialect := db.Dialector.Name()
	for _, c := range binaryColumns {
		var err error
		switch dialect {
		case "mysql":
			err = collateMySQL(db, c)
		case "sqlserver":
			err = collateSQLServer(db, c)
		default:
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to set collation of %s.%s on %s: %w", c.table, c.column, dialect, err)
		}
	}
	return nil
}

func collateMySQL(db *gorm.DB, c binaryColumn) error {
	var current string
	err := db.Raw("SELECT COLLATION_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?",
		c.table, c.column).Scan(&current).Error
	if err != nil || current == MySQLBinaryCollation {
		return err
	}

	// MODIFY keeps the indexes on the column
	return db.Exec("ALTER TABLE ? MODIFY ? VARCHAR(255) CHARACTER SET utf8mb4 COLLATE "+MySQLBinaryCollation+" NOT NULL",
		clause.Table{Name: c.table}, clause.Column{Name: c.column}).Error
}

func collateSQLServer(db *gorm.DB, c binaryColumn) error {
	var current string
	err := db.Raw("SELECT collation_name FROM sys.columns WHERE object_id = OBJECT_ID(?) AND name = ?",
		c.table, c.column).Scan(&current).Error
	if err != nil || current == SQLServerBinaryCollation {
		return err
	}

	// MSSQL refuses to alter an indexed column, so its indexes are rebuilt
	migrator := db.Migrator()
	indexes := []string{c.index}
	if c.table == "nodes" && migrator.HasIndex(c.model, RootNameIndex) {
		indexes = append(indexes, RootNameIndex)
	}
	for _, name := range indexes {
		if err := migrator.DropIndex(c.model, name); err != nil {
			return err
		}
	}

	err = db.Exec("ALTER TABLE ? ALTER COLUMN ? NVARCHAR(255) COLLATE "+SQLServerBinaryCollation+" NOT NULL",
		clause.Table{Name: c.table}, clause.Column{Name: c.column}).Error
	if err != nil {
		return err
	}

	// the root name index is recreated by ensureRootNameIndex
	return migrator.CreateIndex(c.model, c.index)
}

// ensureRootNameIndex creates a unique index on root node names. Composite
// unique indexes treat NULL parents as distinct, so roots need their own.
// MySQL has no partial indexes; root creation is serialized in the repository instead.
func ensureRootNameIndex(db *gorm.DB) error {
	dialect := db.Dialector.Name()
	if dialect == "mysql" {
		return nil
	}

	if db.Migrator().HasIndex(&models.Node{}, RootNameIndex) {
		return nil
	}

	stmt := fmt.Sprintf("CREATE UNIQUE INDEX %s ON nodes (name) WHERE parent_id IS NULL", RootNameIndex)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create %s on %s: %w", RootNameIndex, dialect, err)
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withPragma(dsn, pragma string) string {
	if strings.Contains(dsn, pragma) {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragma
	}
	return dsn + "?" + pragma
}
