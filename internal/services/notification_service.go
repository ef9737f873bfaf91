package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/models"
)

// notificationStore is the slice of NotificationRepository the reviewer needs.
type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListAll(ctx context.Context) ([]models.NotificationWithPharmacy, error)
	ListBySupplier(ctx context.Context, supplierID int) ([]models.NotificationWithPharmacy, error)
	UpdateStatus(ctx context.Context, id int, status string) (int64, error)
}

// Notification review statuses are deliberately separate from demande
// statuses: the supplier's decision does not write back to the demande.
var notificationStatuses = map[string]bool{
	models.NotificationStatusPending:  true,
	models.NotificationStatusAccepted: true,
	models.NotificationStatusRefused:  true,
}

type NotificationService struct {
	notifications notificationStore
	publisher     notificationPublisher
}

func NewNotificationService(notifications notificationStore, publisher notificationPublisher) *NotificationService {
	return &NotificationService{notifications: notifications, publisher: publisher}
}

func (s *NotificationService) Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error) {
	if req.Medicament == "" {
		return nil, apperrors.Validation("medicament est obligatoire")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity doit être positif")
	}
	if req.PharmacyID <= 0 {
		return nil, apperrors.Validation("pharmacy_id est obligatoire")
	}

	n := &models.Notification{
		Medicament: req.Medicament,
		Quantity:   req.Quantity,
		PharmacyID: req.PharmacyID,
		Message:    req.Message,
	}
	if req.SupplierID > 0 {
		supplierID := req.SupplierID
		n.SupplierID = &supplierID
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, apperrors.FromPg("create notification", "notification", err)
	}
	if s.publisher != nil {
		s.publisher.Publish(n)
	}
	return n, nil
}

func (s *NotificationService) ListAll(ctx context.Context) ([]models.NotificationWithPharmacy, error) {
	notifications, err := s.notifications.ListAll(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list notifications", "notification", err)
	}
	if notifications == nil {
		notifications = []models.NotificationWithPharmacy{}
	}
	return notifications, nil
}

func (s *NotificationService) ListBySupplier(ctx context.Context, supplierID int) ([]models.NotificationWithPharmacy, error) {
	if supplierID <= 0 {
		return nil, apperrors.Validation("supplier_id est obligatoire")
	}
	notifications, err := s.notifications.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, apperrors.FromPg("list supplier notifications", "notification", err)
	}
	if notifications == nil {
		notifications = []models.NotificationWithPharmacy{}
	}
	return notifications, nil
}

func (s *NotificationService) UpdateStatus(ctx context.Context, id int, status string) error {
	if !notificationStatuses[status] {
		return apperrors.Validation("statut invalide: %s", status)
	}
	affected, err := s.notifications.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperrors.FromPg("update notification status", "notification", err)
	}
	if affected == 0 {
		return apperrors.NotFound("notification")
	}
	return nil
}
