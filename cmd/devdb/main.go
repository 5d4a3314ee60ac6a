package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/pcnodetree/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "postgres", "database type: postgres or mariadb")
	flag.Parse()

	usage := `
Run a throwaway database container for local development.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-db postgres|mariadb]

ENV_FILE_PATH: path to a .env file providing POSTGRES_IMAGE or MARIADB_IMAGE

example
  devdb -db mariadb
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	container := testutil.StartDBContainer(nil, dbType)
	cfg := container.Config
	fmt.Printf("\nDB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	container.Terminate(nil)
}
