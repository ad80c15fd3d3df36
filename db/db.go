package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// AyuutoDB is the single source of truth for all engine state. Role and
// status checks always go back to it; nothing is cached across requests.
type AyuutoDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewAyuutoDB is a constructor that initializes AyuutoDB with DB and Log
func NewAyuutoDB(log *zerolog.Logger) (*AyuutoDB, error) {
	// Get the database connection string from the environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Error().Msg("DATABASE_URL environment variable is not set")
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	// Open the database connection
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		return nil, err
	}

	return &AyuutoDB{
		DB:  db,
		Log: log,
	}, nil
}

func (a *AyuutoDB) Close() error {
	if err := a.DB.Close(); err != nil {
		return err
	}
	a.Log.Info().Msg("database connection closed")
	a.DB = nil

	return nil
}

// Ping reports whether the database is reachable. Used by the health check.
func (a *AyuutoDB) Ping(ctx context.Context) error {
	return a.DB.PingContext(ctx)
}

func (a *AyuutoDB) execQuery(tx *sql.Tx, query string, args ...interface{}) error {

	if a.DB == nil {
		return fmt.Errorf("database connection is not established")
	}

	_, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %v", err)
	}
	return nil
}

// CommitTransaction commits and logs failures once.
func (a *AyuutoDB) CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		a.Log.Error().Err(err).Msg("error committing transaction")
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
