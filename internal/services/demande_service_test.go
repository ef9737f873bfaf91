package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/models"
)

func validDemandeRequest() *models.CreateDemandeRequest {
	return &models.CreateDemandeRequest{
		PharmacyID: 1,
		SupplierID: 2,
		Medicament: "Paracetamol",
		Quantity:   50,
	}
}

func TestCreateDemandeCreatesLinkedNotification(t *testing.T) {
	store := newMockDemandeStore()
	pub := &mockPublisher{}
	svc := NewDemandeService(store, newMockStockStore(), pub)

	d, err := svc.Create(context.Background(), validDemandeRequest())

	assert.NoError(t, err)
	assert.Equal(t, models.DemandeStatusPending, d.Status)
	assert.Len(t, store.notifications, 1)
	assert.NotNil(t, store.notifications[0].DemandeID)
	assert.Equal(t, d.ID, *store.notifications[0].DemandeID)
	assert.Len(t, pub.published, 1)
}

func TestCreateDemandeRejectsMissingFields(t *testing.T) {
	svc := NewDemandeService(newMockDemandeStore(), newMockStockStore(), nil)

	tests := []struct {
		name   string
		mutate func(*models.CreateDemandeRequest)
	}{
		{"missing pharmacy", func(r *models.CreateDemandeRequest) { r.PharmacyID = 0 }},
		{"missing supplier", func(r *models.CreateDemandeRequest) { r.SupplierID = 0 }},
		{"missing medicament", func(r *models.CreateDemandeRequest) { r.Medicament = "" }},
		{"non-positive quantity", func(r *models.CreateDemandeRequest) { r.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDemandeRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)

			var ve *apperrors.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestUpdateStatusReceivedCreditsStock(t *testing.T) {
	store := newMockDemandeStore()
	stock := newMockStockStore()
	svc := NewDemandeService(store, stock, nil)

	d, err := svc.Create(context.Background(), validDemandeRequest())
	assert.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), d.ID, models.DemandeStatusReceived)

	assert.NoError(t, err)
	assert.Equal(t, 50, stock.quantities[stockKey("Paracetamol", 1)])
}

func TestUpdateStatusReceivedMissingStockIsNoOp(t *testing.T) {
	store := newMockDemandeStore()
	stock := newMockStockStore()
	stock.missing = true
	svc := NewDemandeService(store, stock, nil)

	d, err := svc.Create(context.Background(), validDemandeRequest())
	assert.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), d.ID, models.DemandeStatusReceived)

	assert.NoError(t, err)
	assert.Equal(t, 0, stock.increments)
}

func TestUpdateStatusNonReceivedLeavesStockUntouched(t *testing.T) {
	store := newMockDemandeStore()
	stock := newMockStockStore()
	svc := NewDemandeService(store, stock, nil)

	d, err := svc.Create(context.Background(), validDemandeRequest())
	assert.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), d.ID, models.DemandeStatusAccepted)

	assert.NoError(t, err)
	assert.Equal(t, models.DemandeStatusAccepted, store.demandes[d.ID].Status)
	assert.Equal(t, 0, stock.increments)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	store := newMockDemandeStore()
	svc := NewDemandeService(store, newMockStockStore(), nil)

	d, err := svc.Create(context.Background(), validDemandeRequest())
	assert.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), d.ID, "not-a-real-status")

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, models.DemandeStatusPending, store.demandes[d.ID].Status)
}

func TestUpdateStatusUnknownDemande(t *testing.T) {
	svc := NewDemandeService(newMockDemandeStore(), newMockStockStore(), nil)

	err := svc.UpdateStatus(context.Background(), 999, models.DemandeStatusAccepted)

	var nfe *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestListByPharmacySummary(t *testing.T) {
	store := newMockDemandeStore()
	store.listed = []models.DemandeWithSupplier{
		{Demande: models.Demande{ID: 1, Status: models.DemandeStatusPending}},
		{Demande: models.Demande{ID: 2, Status: models.DemandeStatusPending}},
		{Demande: models.Demande{ID: 3, Status: models.DemandeStatusAccepted}},
		{Demande: models.Demande{ID: 4, Status: models.DemandeStatusReceived}},
		{Demande: models.Demande{ID: 5, Status: models.DemandeStatusNotDelivered}},
	}
	svc := NewDemandeService(store, newMockStockStore(), nil)

	resp, err := svc.ListByPharmacy(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Pending)
	assert.Equal(t, 1, resp.Summary.Accepted)
	assert.Equal(t, 1, resp.Summary.Received)
}

func TestListByPharmacyEmptyIsNotNil(t *testing.T) {
	svc := NewDemandeService(newMockDemandeStore(), newMockStockStore(), nil)

	resp, err := svc.ListByPharmacy(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Demandes)
	assert.Len(t, resp.Demandes, 0)
}
