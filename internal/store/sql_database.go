// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/migrations"
)

// ErrorClassificator decides whether a failed database operation may be
// retried and which domain error a constraint violation stands for.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	UniqueViolation(err error) (constraint string, ok bool)
}

// DB wraps the shared connection pool together with the dialect specific
// query builder and error classification.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database selected by cfg.Driver.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}

// Migrate applies the embedded schema migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// withTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.withTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.withTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// uniqueError maps a unique constraint violation to its domain error.
// Other errors are returned wrapped as statement failures.
func (db *DB) uniqueError(err error) error {
	if constraint, ok := db.errorClassificator.UniqueViolation(err); ok {
		switch constraint {
		case constraintAccountEmail:
			return ErrEmailAlreadyExists
		case constraintAccountLogin:
			return ErrLoginAlreadyExists
		}
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func newDB(conn *sql.DB, dialect string, placeholder sq.PlaceholderFormat, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// maxQueryAttempts bounds retries of read queries failing with a
// [Retryable] error.
const maxQueryAttempts = 3

// queryContext runs a read query, retrying transient failures.
func (db *DB) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	for attempt := 1; attempt <= maxQueryAttempts; attempt++ {
		rows, err = db.QueryContext(ctx, query, args...)
		if err == nil || attempt == maxQueryAttempts || db.errorClassificator.Classify(err) != Retryable {
			return rows, err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*DB.queryContext").
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return nil, err
}
