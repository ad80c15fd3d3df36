package db

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs all pending goose migrations against the connected database.
func (a *AyuutoDB) Migrate() error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}

	if err := goose.Up(a.DB, "migrations"); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	a.Log.Info().Msg("database migrations applied")
	return nil
}
