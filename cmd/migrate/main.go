package main

import (
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// migrate applies or rolls back the embedded schema:
//
//	migrate up        apply all pending migrations
//	migrate down      roll back every migration
//	migrate steps -n  move n migrations (negative rolls back)
//	migrate version   print the current version
func main() {
	steps := flag.Int("n", 1, "number of migrations for the steps command")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	m, err := mysqlrepo.NewMigrator(cfg.MigrateURL())
	if err != nil {
		log.Fatal().Err(err).Msg("migrator init failed")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(*steps)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info().Msg("no migrations applied")
			return
		}
		if verr != nil {
			log.Fatal().Err(verr).Msg("read version failed")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
		return
	default:
		log.Error().Str("command", cmd).Msg("unknown command; use up, down, steps or version")
		os.Exit(2)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Str("command", cmd).Msg("no change")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("migration failed")
	}
	log.Info().Str("command", cmd).Msg("migration done")
}
