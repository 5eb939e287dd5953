// Package db provides PostgreSQL and SQLite storage for talent accounts and their resumes.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the accounts and resumes tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// CheckEmailExists reports whether an account with the given email exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`,
		normalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// CreateAccount inserts the account together with its seed resume in one transaction.
func (db *DB) CreateAccount(ctx context.Context, account *Account, seed types.Resume) error {
	doc, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO accounts (id, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		account.ID, normalizeEmail(account.Email), account.FirstName, account.LastName, account.PasswordHash,
	).Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO resumes (account_id, document) VALUES ($1, $2)`,
		account.ID, doc,
	); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	return nil
}

// GetAccountByEmail returns the account for email, or nil if none exists.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, password_hash, created_at
		 FROM accounts WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// GetResume returns the stored resume of an account, or nil if none exists.
func (db *DB) GetResume(ctx context.Context, accountID uuid.UUID) (*types.Resume, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM resumes WHERE account_id = $1`,
		accountID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return decodeResume(doc)
}

// SaveResume replaces the stored resume of an account.
func (db *DB) SaveResume(ctx context.Context, accountID uuid.UUID, resume types.Resume) error {
	doc, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET document = $2, updated_at = NOW() WHERE account_id = $1`,
		accountID, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "resume", ID: accountID}
	}
	return nil
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		account_id UUID PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
