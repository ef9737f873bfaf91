package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type DemandeRepository struct {
	DB *pgxpool.Pool
}

func NewDemandeRepository(db *pgxpool.Pool) *DemandeRepository {
	return &DemandeRepository{DB: db}
}

// CreateWithNotification inserts the demande and its linked notification in
// one transaction; either both rows exist afterwards or neither does.
func (r *DemandeRepository) CreateWithNotification(ctx context.Context, d *models.Demande, message string) (*models.Notification, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO demandes(pharmacy_id, supplier_id, medicament, quantity, status)
		 VALUES($1, $2, $3, $4, 'pending')
		 RETURNING id, status, created_at, updated_at`,
		d.PharmacyID, d.SupplierID, d.Medicament, d.Quantity,
	).Scan(&d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = fmt.Sprintf("Demande de réapprovisionnement: %s x%d", d.Medicament, d.Quantity)
	}

	n := &models.Notification{
		Medicament: d.Medicament,
		Quantity:   d.Quantity,
		PharmacyID: d.PharmacyID,
		SupplierID: d.SupplierID,
		Message:    message,
		DemandeID:  &d.ID,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO notifications(medicament, quantity, pharmacy_id, supplier_id, message, status, demande_id)
		 VALUES($1, $2, $3, $4, $5, 'pending', $6)
		 RETURNING id, status, created_at, updated_at`,
		n.Medicament, n.Quantity, n.PharmacyID, n.SupplierID, n.Message, d.ID,
	).Scan(&n.ID, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return n, tx.Commit(ctx)
}

func (r *DemandeRepository) Get(ctx context.Context, id int) (*models.Demande, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, pharmacy_id, supplier_id, medicament, quantity, status, accepted_at, created_at, updated_at
		 FROM demandes WHERE id=$1`, id)

	var d models.Demande
	err := row.Scan(&d.ID, &d.PharmacyID, &d.SupplierID, &d.Medicament,
		&d.Quantity, &d.Status, &d.AcceptedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateStatus writes the new status; the transition to accepted stamps
// accepted_at in the same statement. Returns rows matched.
func (r *DemandeRepository) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	if status == models.DemandeStatusAccepted {
		tag, err := r.DB.Exec(ctx,
			`UPDATE demandes SET status=$1, accepted_at=CURRENT_TIMESTAMP, updated_at=CURRENT_TIMESTAMP
			 WHERE id=$2`,
			status, id)
		return tag.RowsAffected(), err
	}
	tag, err := r.DB.Exec(ctx,
		`UPDATE demandes SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return tag.RowsAffected(), err
}

// ListByPharmacy returns the pharmacy's demandes newest-first, each with
// the target supplier joined on (nil when the demande has none).
func (r *DemandeRepository) ListByPharmacy(ctx context.Context, pharmacyID int) ([]models.DemandeWithSupplier, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT d.id, d.pharmacy_id, d.supplier_id, d.medicament, d.quantity,
		        d.status, d.accepted_at, d.created_at, d.updated_at,
		        s.id, s.name, s.surname, s.phone
		 FROM demandes d
		 LEFT JOIN suppliers s ON d.supplier_id = s.id
		 WHERE d.pharmacy_id = $1
		 ORDER BY d.created_at DESC`, pharmacyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var demandes []models.DemandeWithSupplier
	for rows.Next() {
		var d models.DemandeWithSupplier
		var sID *int
		var sName, sSurname, sPhone *string
		err := rows.Scan(&d.ID, &d.PharmacyID, &d.SupplierID, &d.Medicament, &d.Quantity,
			&d.Status, &d.AcceptedAt, &d.CreatedAt, &d.UpdatedAt,
			&sID, &sName, &sSurname, &sPhone)
		if err != nil {
			return nil, err
		}
		if sID != nil {
			ref := models.SupplierRef{ID: *sID}
			if sName != nil {
				ref.Name = *sName
			}
			if sSurname != nil && *sSurname != "" {
				ref.Name = ref.Name + " " + *sSurname
			}
			if sPhone != nil {
				ref.Phone = *sPhone
			}
			d.Supplier = &ref
		}
		demandes = append(demandes, d)
	}
	return demandes, rows.Err()
}
