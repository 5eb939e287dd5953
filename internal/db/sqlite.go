package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteDB stores accounts and resumes in a SQLite file. It has the same method
// set as DB and is used for local runs and tests.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at dsn (":memory:" for an in-memory
// database), applies pragmas and creates the schema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	s := &SQLiteDB{db: db}
	if err := s.applyPragmas(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteDB) Close() {
	_ = s.db.Close()
}

func (s *SQLiteDB) applyPragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Migrate creates the accounts and resumes tables if they do not exist.
func (s *SQLiteDB) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// CheckEmailExists reports whether an account with the given email exists.
func (s *SQLiteDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE email = ?`,
		normalizeEmail(email),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// CreateAccount inserts the account together with its seed resume in one transaction.
func (s *SQLiteDB) CreateAccount(ctx context.Context, account *Account, seed types.Resume) error {
	doc, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, email, first_name, last_name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID.String(), normalizeEmail(account.Email), account.FirstName, account.LastName,
		account.PasswordHash, now.UnixMilli(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO resumes (account_id, document, updated_at) VALUES (?, ?, ?)`,
		account.ID.String(), string(doc), now.UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	account.CreatedAt = time.UnixMilli(now.UnixMilli()).UTC()
	return nil
}

// GetAccountByEmail returns the account for email, or nil if none exists.
func (s *SQLiteDB) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var (
		a         Account
		id        string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, created_at
		 FROM accounts WHERE email = ?`,
		normalizeEmail(email),
	).Scan(&id, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	a.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account id %q: %w", id, err)
	}
	a.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &a, nil
}

// GetResume returns the stored resume of an account, or nil if none exists.
func (s *SQLiteDB) GetResume(ctx context.Context, accountID uuid.UUID) (*types.Resume, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM resumes WHERE account_id = ?`,
		accountID.String(),
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return decodeResume([]byte(doc))
}

// SaveResume replaces the stored resume of an account.
func (s *SQLiteDB) SaveResume(ctx context.Context, accountID uuid.UUID, resume types.Resume) error {
	doc, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE resumes SET document = ?, updated_at = ? WHERE account_id = ?`,
		string(doc), time.Now().UnixMilli(), accountID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Kind: "resume", ID: accountID}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		account_id TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
		document   TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}
