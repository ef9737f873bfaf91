package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/metrics"
	"pharma-backend/internal/models"
)

// demandeStore is the slice of DemandeRepository the lifecycle needs.
type demandeStore interface {
	CreateWithNotification(ctx context.Context, d *models.Demande, message string) (*models.Notification, error)
	Get(ctx context.Context, id int) (*models.Demande, error)
	UpdateStatus(ctx context.Context, id int, status string) (int64, error)
	ListByPharmacy(ctx context.Context, pharmacyID int) ([]models.DemandeWithSupplier, error)
}

// stockStore credits on-hand stock when a demande is received.
type stockStore interface {
	IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error)
}

// notificationPublisher pushes a notification to connected supplier
// websocket clients. Publishing is best-effort and never fails the write.
type notificationPublisher interface {
	Publish(n *models.Notification)
}

var demandeStatuses = map[string]bool{
	models.DemandeStatusPending:      true,
	models.DemandeStatusAccepted:     true,
	models.DemandeStatusReceived:     true,
	models.DemandeStatusNotDelivered: true,
}

// DemandeService owns creation and status transitions of restock
// requests and the side effects each transition implies.
type DemandeService struct {
	demandes  demandeStore
	stock     stockStore
	publisher notificationPublisher
}

func NewDemandeService(demandes demandeStore, stock stockStore, publisher notificationPublisher) *DemandeService {
	return &DemandeService{
		demandes:  demandes,
		stock:     stock,
		publisher: publisher,
	}
}

// Create validates the request and inserts the demande plus its linked
// notification in one transaction. Returns the new demande.
func (s *DemandeService) Create(ctx context.Context, req *models.CreateDemandeRequest) (*models.Demande, error) {
	if req.PharmacyID <= 0 {
		return nil, apperrors.Validation("pharmacy_id est obligatoire")
	}
	if req.SupplierID <= 0 {
		return nil, apperrors.Validation("supplier_id est obligatoire")
	}
	if req.Medicament == "" {
		return nil, apperrors.Validation("medicament est obligatoire")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity doit être positif")
	}

	supplierID := req.SupplierID
	d := &models.Demande{
		PharmacyID: req.PharmacyID,
		SupplierID: &supplierID,
		Medicament: req.Medicament,
		Quantity:   req.Quantity,
	}

	n, err := s.demandes.CreateWithNotification(ctx, d, req.Message)
	if err != nil {
		return nil, apperrors.FromPg("create demande", "demande", err)
	}

	metrics.DemandesCreatedTotal.Inc()
	if s.publisher != nil {
		s.publisher.Publish(n)
	}
	return d, nil
}

// UpdateStatus applies one transition of the closed status set.
// The transition to received credits the matching stock item with an
// atomic increment; a missing stock item leaves stock untouched.
func (s *DemandeService) UpdateStatus(ctx context.Context, id int, status string) error {
	if !demandeStatuses[status] {
		return apperrors.Validation("statut invalide: %s", status)
	}

	affected, err := s.demandes.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperrors.FromPg("update demande status", "demande", err)
	}
	if affected == 0 {
		return apperrors.NotFound("demande")
	}
	metrics.DemandeTransitionsTotal.WithLabelValues(status).Inc()

	if status != models.DemandeStatusReceived {
		return nil
	}

	d, err := s.demandes.Get(ctx, id)
	if err != nil {
		return apperrors.FromPg("read demande for receipt", "demande", err)
	}
	credited, err := s.stock.IncrementQuantity(ctx, d.Medicament, d.PharmacyID, d.Quantity)
	if err != nil {
		return apperrors.FromPg("credit stock", "medicament", err)
	}
	if credited > 0 {
		metrics.StockIncrementsTotal.Inc()
	}
	return nil
}

// ListByPharmacy returns the pharmacy's demandes with the per-status
// summary derived from the same rows.
func (s *DemandeService) ListByPharmacy(ctx context.Context, pharmacyID int) (*models.DemandeListResponse, error) {
	if pharmacyID <= 0 {
		return nil, apperrors.Validation("pharmacy_id est obligatoire")
	}

	demandes, err := s.demandes.ListByPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, apperrors.FromPg("list demandes", "demande", err)
	}

	summary := models.DemandeSummary{Total: len(demandes)}
	for _, d := range demandes {
		switch d.Status {
		case models.DemandeStatusPending:
			summary.Pending++
		case models.DemandeStatusAccepted:
			summary.Accepted++
		case models.DemandeStatusReceived:
			summary.Received++
		}
	}

	if demandes == nil {
		demandes = []models.DemandeWithSupplier{}
	}
	return &models.DemandeListResponse{Demandes: demandes, Summary: summary}, nil
}
