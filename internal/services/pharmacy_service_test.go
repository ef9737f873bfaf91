package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/models"
)

func newPharmacyService(store *mockPharmacyStore) *PharmacyService {
	return NewPharmacyService(store, &mockAccountChecker{emails: map[string]bool{}})
}

func validPharmacyRequest() *models.CreatePharmacyRequest {
	return &models.CreatePharmacyRequest{
		Name:      "Pharmacie A",
		Email:     "a@x.com",
		Phone:     "12345678",
		Password:  "secret1",
		President: "Dr A",
	}
}

func TestCreatePharmacyLinksLoginAccount(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	p, err := svc.Create(context.Background(), validPharmacyRequest())
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.AccountID)
}

func TestCreatePharmacyDuplicateEmailFailsSecondAttempt(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	_, err := svc.Create(context.Background(), validPharmacyRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validPharmacyRequest())
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "existe déjà")
}

func TestCreatePharmacyDuplicatePastPrecheckStillFails(t *testing.T) {
	// With the pre-check blinded only the unique index stands between
	// two concurrent creates; the constraint hit must still be a 400.
	store := newMockPharmacyStore()
	store.blindCheck = true
	svc := newPharmacyService(store)

	_, err := svc.Create(context.Background(), validPharmacyRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validPharmacyRequest())
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreatePharmacyRejectsEmailTakenByAccount(t *testing.T) {
	store := newMockPharmacyStore()
	svc := NewPharmacyService(store, &mockAccountChecker{emails: map[string]bool{"a@x.com": true}})

	_, err := svc.Create(context.Background(), validPharmacyRequest())
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "compte")
}

func TestCreatePharmacyValidation(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	tests := []struct {
		name   string
		mutate func(req *models.CreatePharmacyRequest)
	}{
		{"missing name", func(r *models.CreatePharmacyRequest) { r.Name = "" }},
		{"bad email", func(r *models.CreatePharmacyRequest) { r.Email = "not-an-email" }},
		{"bad phone", func(r *models.CreatePharmacyRequest) { r.Phone = "123" }},
		{"short password", func(r *models.CreatePharmacyRequest) { r.Password = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPharmacyRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			var ve *apperrors.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestToggleActiveRoundTrip(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	p, err := svc.Create(context.Background(), validPharmacyRequest())
	require.NoError(t, err)
	require.True(t, p.IsActive)

	off, err := svc.ToggleActive(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	// Toggling back returns the pharmacy to its original state
	on, err := svc.ToggleActive(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, on.IsActive)
}

func TestToggleActiveUnknownPharmacy(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	_, err := svc.ToggleActive(context.Background(), 999, false)
	var nfe *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestChangePasswordVerifiesOldCredential(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	p, err := svc.Create(context.Background(), validPharmacyRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), p.ID, &models.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newsecret",
	})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "ancien mot de passe")

	err = svc.ChangePassword(context.Background(), p.ID, &models.ChangePasswordRequest{
		OldPassword: "secret1",
		NewPassword: "newsecret",
	})
	assert.NoError(t, err)
}

func TestDeletePharmacyUnknownID(t *testing.T) {
	svc := newPharmacyService(newMockPharmacyStore())

	err := svc.Delete(context.Background(), 42)
	var nfe *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}
