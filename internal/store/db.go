package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"

	"newsletter-server/internal/observability"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

const pgUniqueViolation = "23505"

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	return Store{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *sqlx.DB, logger *observability.Logger) Store {
	return Store{db: db, logger: logger}
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies the schema and seeds the default template. Both steps are
// idempotent.
func (s *Store) Migrate(ctx context.Context, defaultTemplateSlug string) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlSeedDefaultTemplate, defaultTemplateSlug, DefaultTemplateHTML); err != nil {
		return fmt.Errorf("failed to seed default template: %w", err)
	}
	s.logger.Info(ctx, "database schema up to date")
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// execOne runs a statement that must touch at least one row.
func (s *Store) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
