package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/google/uuid"
)

// Account is a stored talent account.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrDuplicateEmail is returned by CreateAccount when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// NotFoundError reports a missing row on an update.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func decodeResume(doc []byte) (*types.Resume, error) {
	var r types.Resume
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return &r, nil
}
