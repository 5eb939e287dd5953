package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "Already Exist"
}

// ErrInvalidCredentials indicates an unknown username or a wrong password.
// Both cases share one message so callers cannot probe for accounts.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Username or password is invalid"
}

// ErrProfileNotFound indicates the account has no stored resume.
type ErrProfileNotFound struct {
	AccountID uuid.UUID
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.AccountID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		invalid     *ErrInvalidCredentials
		notFound    *ErrProfileNotFound
		validation  *ErrValidation
	)
	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
