// Command devdb applies the development mirror schema, and optionally demo
// data, to the Postgres database named by POSTGRES_DSN.
package main

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"ms-backoffice/internal/config"
	"ms-backoffice/internal/database/migrations"
	"ms-backoffice/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	to := flag.Uint("to", 0, "migrate up or down to this version")
	seed := flag.Bool("seed", false, "also apply the demo data migrations")
	flag.Parse()

	log := logger.NewStdoutLogger()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()
	if cfg.Database.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to reach database: %v", err))
	}

	runner := migrations.NewRunner(db, migrations.MigrateOptions{
		MigrationsDir: cfg.Migrations.Path,
		SeedData:      *seed || cfg.Migrations.Seed,
	}, log)
	defer runner.Close()

	switch {
	case *down:
		err = runner.MigrateDown()
	case *to > 0:
		err = runner.MigrateTo(*to)
	default:
		err = runner.RunMigrations()
	}
	if err != nil {
		log.Fatal("MIGRATIONS", err.Error())
	}

	version, err := runner.Version()
	if err != nil {
		log.Fatal("MIGRATIONS", err.Error())
	}
	log.Info("MIGRATIONS", fmt.Sprintf("✅ Database at version %d", version))
}
