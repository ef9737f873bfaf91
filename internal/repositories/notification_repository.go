package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Create inserts a standalone notification (outside the demande flow).
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO notifications(medicament, quantity, pharmacy_id, supplier_id, message, status, demande_id)
		 VALUES($1, $2, $3, $4, $5, 'pending', $6)
		 RETURNING id, status, created_at, updated_at`,
		n.Medicament, n.Quantity, n.PharmacyID, n.SupplierID, n.Message, n.DemandeID,
	).Scan(&n.ID, &n.Status, &n.CreatedAt, &n.UpdatedAt)
}

const notificationListQuery = `
	SELECT n.id, n.medicament, n.quantity, n.pharmacy_id, n.supplier_id,
	       n.message, n.status, n.demande_id, n.created_at, n.updated_at,
	       COALESCE(p.name, ''), COALESCE(p.president, '')
	FROM notifications n
	LEFT JOIN pharmacies p ON n.pharmacy_id = p.id`

// ListAll returns every notification joined with the requesting
// pharmacy's name and president, newest-first.
func (r *NotificationRepository) ListAll(ctx context.Context) ([]models.NotificationWithPharmacy, error) {
	rows, err := r.DB.Query(ctx, notificationListQuery+` ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// ListBySupplier returns one supplier's notifications, newest-first.
func (r *NotificationRepository) ListBySupplier(ctx context.Context, supplierID int) ([]models.NotificationWithPharmacy, error) {
	rows, err := r.DB.Query(ctx,
		notificationListQuery+` WHERE n.supplier_id = $1 ORDER BY n.created_at DESC`,
		supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]models.NotificationWithPharmacy, error) {
	var notifications []models.NotificationWithPharmacy
	for rows.Next() {
		var n models.NotificationWithPharmacy
		err := rows.Scan(&n.ID, &n.Medicament, &n.Quantity, &n.PharmacyID, &n.SupplierID,
			&n.Message, &n.Status, &n.DemandeID, &n.CreatedAt, &n.UpdatedAt,
			&n.PharmacyName, &n.PharmacyPresident)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UpdateStatus records the supplier's review decision. Returns rows matched.
func (r *NotificationRepository) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE notifications SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return tag.RowsAffected(), err
}
