package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type SupplierRepository struct {
	DB *pgxpool.Pool
}

func NewSupplierRepository(db *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{DB: db}
}

func (r *SupplierRepository) Create(ctx context.Context, s *models.Supplier) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO suppliers(name, surname, email, phone, password_hash, is_active)
		 VALUES($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		s.Name, s.Surname, s.Email, s.Phone, s.PasswordHash,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SupplierRepository) Get(ctx context.Context, id int) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, surname, email, phone, password_hash, is_active, created_at, updated_at
		 FROM suppliers WHERE id=$1`, id)

	var s models.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Phone,
		&s.PasswordHash, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, surname, email, phone, is_active, created_at, updated_at
		 FROM suppliers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		var s models.Supplier
		err := rows.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Phone,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

func (r *SupplierRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM suppliers WHERE email=$1 AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}

func (r *SupplierRepository) Update(ctx context.Context, s *models.Supplier) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE suppliers SET name=$1, surname=$2, email=$3, phone=$4, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$5`,
		s.Name, s.Surname, s.Email, s.Phone, s.ID)
	return tag.RowsAffected(), err
}

func (r *SupplierRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE suppliers SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		passwordHash, id)
	return tag.RowsAffected(), err
}

func (r *SupplierRepository) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE suppliers SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		isActive, id)
	return tag.RowsAffected(), err
}

func (r *SupplierRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	return tag.RowsAffected(), err
}
