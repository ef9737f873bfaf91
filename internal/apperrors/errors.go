package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError signals missing or malformed input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError signals failed authentication (HTTP 401).
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// NotFoundError signals that no row matched the request (HTTP 404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// PersistenceError wraps an underlying store failure (HTTP 500).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Auth(msg string) error {
	return &AuthError{Msg: msg}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// uniqueViolation is the PostgreSQL error code for a UNIQUE constraint hit.
const uniqueViolation = "23505"

// FromPg translates driver errors into the application taxonomy.
// Unique-constraint violations become ValidationErrors so a duplicate
// insert racing past the pre-check still surfaces as a 400, and
// pgx.ErrNoRows becomes a NotFoundError for the named resource.
func FromPg(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Validation("%s existe déjà", resource)
	}
	return Persistence(op, err)
}
