package main

import (
	"database/sql"
	"errors"

	"finbook/internal/config"
	"finbook/internal/logging"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("sql.Open")
	}
	defer database.Close()

	driver, err := postgres.WithInstance(database, &postgres.Config{})
	if err != nil {
		logger.WithError(err).Fatal("postgres.WithInstance")
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.WithError(err).Fatal("migrate.NewWithDatabaseInstance")
	}

	before, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		before = 0
	} else if err != nil {
		logger.WithError(err).Fatal("read current version")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.WithError(err).Fatal("migrate up")
	}

	after, _, err := m.Version()
	if err != nil {
		logger.WithError(err).Fatal("read final version")
	}
	logger.WithFields(map[string]any{"from": before, "to": after}).Info("migrations applied")
}
