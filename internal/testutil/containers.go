package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Credentials of the throwaway container databases
const (
	containerDatabase = "pcnodetree"
	containerUser     = "pcnodetree"
	containerPassword = "pcnodetree"
)

// DBContainer is a running database container and the config that reaches it
type DBContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops the container. t may be nil outside of tests.
func (c *DBContainer) Terminate(t *testing.T) {
	if c == nil || c.Container == nil {
		return
	}
	if err := c.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate %s: %v", c.Config.DBType, err)
	}
}

type containerSpec struct {
	image      string
	port       string
	env        map[string]string
	driverName string
}

func specFor(dbType string) (containerSpec, error) {
	switch dbType {
	case "postgres":
		return containerSpec{
			image: getEnv("POSTGRES_IMAGE", "postgres:17-alpine"),
			port:  "5432",
			env: map[string]string{
				"POSTGRES_DB":       containerDatabase,
				"POSTGRES_USER":     containerUser,
				"POSTGRES_PASSWORD": containerPassword,
			},
			driverName: "pgx",
		}, nil
	case "mysql", "mariadb":
		return containerSpec{
			image: getEnv("MARIADB_IMAGE", "mariadb:11"),
			port:  "3306",
			env: map[string]string{
				"MYSQL_ROOT_PASSWORD": containerPassword,
				"MYSQL_DATABASE":      containerDatabase,
				"MYSQL_USER":          containerUser,
				"MYSQL_PASSWORD":      containerPassword,
			},
			driverName: "mysql",
		}, nil
	default:
		return containerSpec{}, fmt.Errorf("no container for database type %q", dbType)
	}
}

// StartDBContainer starts a postgres or mariadb container and waits until it
// accepts queries. t may be nil, in which case failures exit the process.
func StartDBContainer(t *testing.T, dbType string) *DBContainer {
	ctx := context.Background()

	spec, err := specFor(dbType)
	if err != nil {
		exitWithError(t, err, "Unsupported database")
	}

	tcpPort, err := nat.NewPort("tcp", spec.port)
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        spec.image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          spec.env,
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start database container")
	}

	dbc := &DBContainer{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		dbc.Terminate(t)
		exitWithError(t, err, "Failed to get container host")
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		dbc.Terminate(t)
		exitWithError(t, err, "Failed to get mapped port")
	}

	dbc.Config = &config.Config{
		AppEnv:            "test",
		LogLevel:          "warn",
		DBType:            dbType,
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        containerDatabase,
		DBUser:            containerUser,
		DBPassword:        containerPassword,
		DBSSLMode:         "disable",
		DBConnectionLimit: 5,
		TreeFanoutLimit:   4,
		AuthMode:          config.AuthModeToken,
		ServiceRoleKey:    "test-service-role-key",
	}

	if err := waitForQueries(spec.driverName, dsnFor(dbc.Config)); err != nil {
		dbc.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("%s not ready", dbType))
	}

	logMessage(t, "DB_TYPE=%s DB_HOST=%s DB_PORT=%s", dbType, host, mapped.Port())
	return dbc
}

func dsnFor(cfg *config.Config) string {
	if cfg.DBType == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
}

// waitForQueries pings until the server accepts connections, the listening
// port opens before initialization completes
func waitForQueries(driverName, dsn string) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("not ready after 30 seconds: %w", err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
