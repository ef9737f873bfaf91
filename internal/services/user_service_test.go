package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/config"
	"pharma-backend/internal/models"
)

func newUserService(store *mockUserStore) *UserService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "pharma-backend-test"
	return NewUserService(store, auth.NewJWTManager(cfg))
}

func seedUser(t *testing.T, store *mockUserStore, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Name: "Jean", Email: email, PasswordHash: hash, Role: "pharmacist"}
	require.NoError(t, store.Create(context.Background(), u))
	return u
}

func TestLoginSuccess(t *testing.T) {
	store := newMockUserStore()
	seedUser(t, store, "jean@pharma.fr", "secret1")
	svc := newUserService(store)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "jean@pharma.fr", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jean@pharma.fr", resp.User.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newUserService(newMockUserStore())

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	var ae *apperrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "email not found", ae.Msg)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newMockUserStore()
	seedUser(t, store, "jean@pharma.fr", "secret1")
	svc := newUserService(store)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "jean@pharma.fr", Password: "wrong"})
	var ae *apperrors.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "incorrect password", ae.Msg)
}

func TestLoginStoreOutageIsNotAuthFailure(t *testing.T) {
	// A DB outage must surface as a 500, not a 401.
	store := newMockUserStore()
	store.failGetByEmail = errors.New("dial tcp 127.0.0.1:5432: connection refused")
	svc := newUserService(store)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "jean@pharma.fr", Password: "secret1"})
	var pe *apperrors.PersistenceError
	require.ErrorAs(t, err, &pe)
	var ae *apperrors.AuthError
	assert.False(t, errors.As(err, &ae))
}

func TestLoginTOTPEnabledReturnsTempToken(t *testing.T) {
	store := newMockUserStore()
	u := seedUser(t, store, "admin@pharma.fr", "secret1")
	u.Role = "admin"
	u.TOTPEnabled = true
	svc := newUserService(store)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@pharma.fr", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, resp.Requires2FA)
	assert.NotEmpty(t, resp.TempToken)
	assert.Empty(t, resp.Token)
}

func TestCreateUserDuplicateEmailFailsSecondAttempt(t *testing.T) {
	svc := newUserService(newMockUserStore())

	req := &models.CreateUserRequest{Name: "Jean", Email: "jean@pharma.fr", Password: "secret1", Role: "pharmacist"}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "existe déjà")
}

func TestUserToggleActiveRoundTrip(t *testing.T) {
	store := newMockUserStore()
	u := seedUser(t, store, "jean@pharma.fr", "secret1")
	svc := newUserService(store)

	off, err := svc.ToggleActive(context.Background(), u.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	on, err := svc.ToggleActive(context.Background(), u.ID, true)
	require.NoError(t, err)
	assert.True(t, on.IsActive)
}

func TestIssueTokenRejectsDeactivatedAccount(t *testing.T) {
	store := newMockUserStore()
	u := seedUser(t, store, "admin@pharma.fr", "secret1")
	u.IsActive = false
	svc := newUserService(store)

	_, err := svc.IssueToken(context.Background(), u.ID)
	var ae *apperrors.AuthError
	assert.ErrorAs(t, err, &ae)
}
