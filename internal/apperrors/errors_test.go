package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPgNil(t *testing.T) {
	assert.NoError(t, FromPg("insert", "pharmacie", nil))
}

func TestFromPgNoRows(t *testing.T) {
	err := FromPg("get pharmacy", "pharmacie", pgx.ErrNoRows)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "pharmacie not found", nfe.Error())
}

func TestFromPgUniqueViolation(t *testing.T) {
	// A duplicate insert racing past the pre-check hits the unique
	// index; the constraint error must come back as a 400, not a 500.
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "pharmacies_email_key"}
	err := FromPg("create pharmacy", "pharmacie", pgErr)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "pharmacie existe déjà", ve.Msg)
}

func TestFromPgWrappedUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("tx commit: %w", &pgconn.PgError{Code: "23505"})
	err := FromPg("create pharmacy", "pharmacie", wrapped)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestFromPgOtherErrorsArePersistence(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	err := FromPg("list pharmacies", "pharmacie", cause)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, cause)
}

func TestFromPgOtherPgCodesArePersistence(t *testing.T) {
	// Only unique violations translate to validation failures.
	pgErr := &pgconn.PgError{Code: "23503"} // foreign_key_violation
	err := FromPg("create demande", "demande", pgErr)

	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)
}
