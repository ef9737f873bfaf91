package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type DoctorRepository struct {
	DB *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{DB: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *models.Doctor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO doctors(name, surname, email, password_hash, national_id, specialty, is_active)
		 VALUES($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		d.Name, d.Surname, d.Email, d.PasswordHash, d.NationalID, d.Specialty,
	).Scan(&d.ID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DoctorRepository) Get(ctx context.Context, id int) (*models.Doctor, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, surname, email, password_hash, national_id, specialty, is_active, created_at, updated_at
		 FROM doctors WHERE id=$1`, id)

	var d models.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Surname, &d.Email, &d.PasswordHash,
		&d.NationalID, &d.Specialty, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*models.Doctor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, surname, email, national_id, specialty, is_active, created_at, updated_at
		 FROM doctors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*models.Doctor
	for rows.Next() {
		var d models.Doctor
		err := rows.Scan(&d.ID, &d.Name, &d.Surname, &d.Email,
			&d.NationalID, &d.Specialty, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, rows.Err()
}

func (r *DoctorRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE email=$1 AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}

func (r *DoctorRepository) Update(ctx context.Context, d *models.Doctor) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE doctors SET name=$1, surname=$2, email=$3, national_id=$4, specialty=$5, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$6`,
		d.Name, d.Surname, d.Email, d.NationalID, d.Specialty, d.ID)
	return tag.RowsAffected(), err
}

func (r *DoctorRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE doctors SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		passwordHash, id)
	return tag.RowsAffected(), err
}

func (r *DoctorRepository) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE doctors SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		isActive, id)
	return tag.RowsAffected(), err
}

func (r *DoctorRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM doctors WHERE id=$1`, id)
	return tag.RowsAffected(), err
}
