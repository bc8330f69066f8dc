package helper

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"hotelier/config"
)

const migrationsPath = "file://migrations/postgres"

// MigrateUp applies every pending migration against the write database.
func MigrateUp(conf *config.Config) error {
	m, err := newMigrate(conf)
	if err != nil {
		return err
	}

	defer closeMigrate(m)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("No pending migrations")

			return nil
		}

		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info().Msg("Migrations applied")

	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(conf *config.Config) error {
	m, err := newMigrate(conf)
	if err != nil {
		return err
	}

	defer closeMigrate(m)

	if err = m.Steps(-1); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	log.Info().Msg("Migration rolled back")

	return nil
}

func newMigrate(conf *config.Config) (*migrate.Migrate, error) {
	pg := conf.DB.Postgres

	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&x-migrations-table=%s",
		pg.Write.Username,
		pg.Write.Password,
		pg.Write.Host,
		pg.Write.Port,
		pg.Write.Name,
		pg.Write.SSLMode,
		pg.MigrationTable,
	)

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		log.Error().Err(sourceErr).Msg("Failed to close migration source")
	}

	if dbErr != nil {
		log.Error().Err(dbErr).Msg("Failed to close migration database connection")
	}
}
