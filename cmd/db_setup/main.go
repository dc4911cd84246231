package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/foracure/backend/internal/db"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// db_setup creates (or upgrades) the news table without starting the service
func main() {
	envFile := flag.String("envfile", ".env", "optional dotenv file with DATABASE_URL")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load env file %s: %s", *envFile, err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatalln("DATABASE_URL not set")
	}

	version, err := db.SetupSchema(databaseURL)
	if err != nil {
		log.Fatalf("setup schema: %s", err)
	}

	log.Infof("db schema ready, version: %d", version)
}
