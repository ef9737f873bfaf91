package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pharma-backend/internal/apperrors"
)

func TestErrorMapsTaxonomyToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperrors.Validation("email existe déjà"), 400, "email existe déjà"},
		{"auth", apperrors.Auth("incorrect password"), 401, "incorrect password"},
		{"not found", apperrors.NotFound("demande"), 404, "demande not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.body, resp.Error)
			assert.Empty(t, resp.Details)
		})
	}
}

func TestErrorHidesPersistenceDetailsInProduction(t *testing.T) {
	err := apperrors.Persistence("insert demande", assert.AnError)

	t.Setenv("APP_ENV", "production")
	rec := httptest.NewRecorder()
	Error(rec, err)

	assert.Equal(t, 500, rec.Code)
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Empty(t, resp.Details)

	t.Setenv("APP_ENV", "development")
	rec = httptest.NewRecorder()
	Error(rec, err)

	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Details)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 400, StatusFor(apperrors.Validation("x")))
	assert.Equal(t, 401, StatusFor(apperrors.Auth("x")))
	assert.Equal(t, 404, StatusFor(apperrors.NotFound("x")))
	assert.Equal(t, 500, StatusFor(assert.AnError))
}
