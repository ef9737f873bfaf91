package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharma-backend/internal/config"
	"pharma-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "pharma-backend-test"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(testConfig())
	user := &models.User{ID: 42, Email: "admin@pharma.tn", Role: "admin", IsActive: true}

	token, err := m.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "admin@pharma.tn", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.IsActive)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	user := &models.User{ID: 1, Email: "a@x.com", Role: "pharmacist"}

	token, err := m.GenerateToken(user)
	assert.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := NewJWTManager(testConfig())
	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTempTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	user := &models.User{ID: 7, Email: "admin@pharma.tn"}

	temp, err := m.GenerateTempToken(user)
	assert.NoError(t, err)

	claims, err := m.ValidateTempToken(temp)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "2fa_pending", claims.Type)
}

func TestTempTokenIsNotAFullToken(t *testing.T) {
	m := NewJWTManager(testConfig())
	user := &models.User{ID: 7, Email: "admin@pharma.tn", Role: "admin"}

	full, err := m.GenerateToken(user)
	assert.NoError(t, err)

	// A full token must not pass temp validation
	_, err = m.ValidateTempToken(full)
	assert.Error(t, err)
}
