package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type MedicamentRepository struct {
	DB *pgxpool.Pool
}

func NewMedicamentRepository(db *pgxpool.Pool) *MedicamentRepository {
	return &MedicamentRepository{DB: db}
}

func (r *MedicamentRepository) Create(ctx context.Context, m *models.Medicament) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO medicaments(name, quantity, pharmacy_id)
		 VALUES($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.Quantity, m.PharmacyID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MedicamentRepository) Get(ctx context.Context, id int) (*models.Medicament, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, quantity, pharmacy_id, created_at, updated_at
		 FROM medicaments WHERE id=$1`, id)

	var m models.Medicament
	err := row.Scan(&m.ID, &m.Name, &m.Quantity, &m.PharmacyID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all stock items, alphabetical by name.
func (r *MedicamentRepository) List(ctx context.Context) ([]*models.Medicament, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, quantity, pharmacy_id, created_at, updated_at
		 FROM medicaments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Medicament
	for rows.Next() {
		var m models.Medicament
		err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.PharmacyID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

// SetQuantity overwrites the on-hand quantity (inventory correction).
func (r *MedicamentRepository) SetQuantity(ctx context.Context, id int, quantity int) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE medicaments SET quantity=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		quantity, id)
	return tag.RowsAffected(), err
}

// IncrementQuantity credits stock with a single atomic statement so two
// concurrent receipts for the same item cannot lose an update. Returns
// the number of rows matched; zero means no stock item exists for this
// medication+pharmacy pair.
func (r *MedicamentRepository) IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE medicaments SET quantity = quantity + $1, updated_at=CURRENT_TIMESTAMP
		 WHERE name=$2 AND pharmacy_id=$3`,
		delta, name, pharmacyID)
	return tag.RowsAffected(), err
}
