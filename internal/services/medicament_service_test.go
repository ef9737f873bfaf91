package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/models"
)

func TestCreateMedicament(t *testing.T) {
	svc := NewMedicamentService(newMockMedicamentStore())

	m, err := svc.Create(context.Background(), &models.CreateMedicamentRequest{
		Name:       "Paracetamol",
		Quantity:   100,
		PharmacyID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, 100, m.Quantity)
}

func TestCreateMedicamentDuplicatePairFails(t *testing.T) {
	// The same medication can exist at two pharmacies but not twice at one.
	svc := NewMedicamentService(newMockMedicamentStore())

	req := &models.CreateMedicamentRequest{Name: "Paracetamol", Quantity: 100, PharmacyID: 1}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "existe déjà")

	other := &models.CreateMedicamentRequest{Name: "Paracetamol", Quantity: 20, PharmacyID: 2}
	_, err = svc.Create(context.Background(), other)
	assert.NoError(t, err)
}

func TestCreateMedicamentValidation(t *testing.T) {
	svc := NewMedicamentService(newMockMedicamentStore())

	tests := []struct {
		name string
		req  *models.CreateMedicamentRequest
	}{
		{"missing name", &models.CreateMedicamentRequest{Quantity: 10, PharmacyID: 1}},
		{"missing pharmacy", &models.CreateMedicamentRequest{Name: "Aspirine", Quantity: 10}},
		{"negative quantity", &models.CreateMedicamentRequest{Name: "Aspirine", Quantity: -1, PharmacyID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var ve *apperrors.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestSetQuantityUnknownMedicament(t *testing.T) {
	svc := NewMedicamentService(newMockMedicamentStore())

	qty := 5
	_, err := svc.SetQuantity(context.Background(), 999, &models.SetQuantityRequest{Quantity: &qty})
	var nfe *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}
