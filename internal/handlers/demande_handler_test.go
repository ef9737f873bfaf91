package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-backend/internal/models"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/httpx"
)

type fakeDemandeStore struct {
	demandes map[int]*models.Demande
	nextID   int
}

func newFakeDemandeStore() *fakeDemandeStore {
	return &fakeDemandeStore{demandes: map[int]*models.Demande{}, nextID: 1}
}

func (s *fakeDemandeStore) CreateWithNotification(ctx context.Context, d *models.Demande, message string) (*models.Notification, error) {
	d.ID = s.nextID
	s.nextID++
	d.Status = models.DemandeStatusPending
	s.demandes[d.ID] = d
	supplierID := 0
	if d.SupplierID != nil {
		supplierID = *d.SupplierID
	}
	return &models.Notification{ID: d.ID, DemandeID: &d.ID, SupplierID: &supplierID, Message: message}, nil
}

func (s *fakeDemandeStore) Get(ctx context.Context, id int) (*models.Demande, error) {
	d, ok := s.demandes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (s *fakeDemandeStore) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	d, ok := s.demandes[id]
	if !ok {
		return 0, nil
	}
	d.Status = status
	return 1, nil
}

func (s *fakeDemandeStore) ListByPharmacy(ctx context.Context, pharmacyID int) ([]models.DemandeWithSupplier, error) {
	var rows []models.DemandeWithSupplier
	for _, d := range s.demandes {
		if d.PharmacyID == pharmacyID {
			rows = append(rows, models.DemandeWithSupplier{Demande: *d})
		}
	}
	return rows, nil
}

type fakeStockStore struct{}

func (fakeStockStore) IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error) {
	return 1, nil
}

func newDemandeRouter(store *fakeDemandeStore) *mux.Router {
	h := NewDemandeHandler(services.NewDemandeService(store, fakeStockStore{}, nil))
	r := mux.NewRouter()
	r.HandleFunc("/api/demandes/create", h.CreateDemande).Methods(http.MethodPost)
	r.HandleFunc("/api/demandes/pharmacie/{id}", h.ListByPharmacy).Methods(http.MethodGet)
	r.HandleFunc("/api/demandes/{id}/status", h.UpdateStatus).Methods(http.MethodPut)
	return r
}

func TestCreateDemandeReturnsCreatedRow(t *testing.T) {
	router := newDemandeRouter(newFakeDemandeStore())

	body, _ := json.Marshal(models.CreateDemandeRequest{
		PharmacyID: 1,
		SupplierID: 2,
		Medicament: "Doliprane 1000mg",
		Quantity:   30,
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/demandes/create", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var d models.Demande
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 1, d.ID)
	assert.Equal(t, models.DemandeStatusPending, d.Status)
	assert.Equal(t, "Doliprane 1000mg", d.Medicament)
}

func TestCreateDemandeRejectsBadInput(t *testing.T) {
	router := newDemandeRouter(newFakeDemandeStore())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"pharmacy_id":`},
		{"missing medicament", `{"pharmacy_id": 1, "supplier_id": 2, "quantity": 10}`},
		{"zero quantity", `{"pharmacy_id": 1, "supplier_id": 2, "medicament": "Aspirine", "quantity": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/demandes/create", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp httpx.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestUpdateDemandeStatus(t *testing.T) {
	store := newFakeDemandeStore()
	router := newDemandeRouter(store)

	supplierID := 2
	store.demandes[1] = &models.Demande{ID: 1, PharmacyID: 1, SupplierID: &supplierID, Medicament: "Aspirine", Quantity: 5, Status: models.DemandeStatusPending}
	store.nextID = 2

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/demandes/1/status", bytes.NewBufferString(`{"status": "accepted"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DemandeStatusAccepted, store.demandes[1].Status)
}

func TestUpdateDemandeStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeDemandeStore()
	router := newDemandeRouter(store)
	store.demandes[1] = &models.Demande{ID: 1, Status: models.DemandeStatusPending}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/demandes/1/status", bytes.NewBufferString(`{"status": "shipped"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.DemandeStatusPending, store.demandes[1].Status)
}

func TestUpdateDemandeStatusUnknownID(t *testing.T) {
	router := newDemandeRouter(newFakeDemandeStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/demandes/999/status", bytes.NewBufferString(`{"status": "accepted"}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListByPharmacyIncludesSummary(t *testing.T) {
	store := newFakeDemandeStore()
	router := newDemandeRouter(store)

	store.demandes[1] = &models.Demande{ID: 1, PharmacyID: 7, Status: models.DemandeStatusPending}
	store.demandes[2] = &models.Demande{ID: 2, PharmacyID: 7, Status: models.DemandeStatusReceived}
	store.demandes[3] = &models.Demande{ID: 3, PharmacyID: 8, Status: models.DemandeStatusPending}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/demandes/pharmacie/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DemandeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Pending)
	assert.Equal(t, 1, resp.Summary.Received)
	assert.Len(t, resp.Demandes, 2)
}
