package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type OrdonnanceRepository struct {
	DB *pgxpool.Pool
}

func NewOrdonnanceRepository(db *pgxpool.Pool) *OrdonnanceRepository {
	return &OrdonnanceRepository{DB: db}
}

func (r *OrdonnanceRepository) Create(ctx context.Context, o *models.Ordonnance) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO ordonnances(doctor_id, patient_national_id, patient_name, patient_surname, body, status)
		 VALUES($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at, updated_at`,
		o.DoctorID, o.PatientNationalID, o.PatientName, o.PatientSurname, o.Body,
	).Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrdonnanceRepository) Get(ctx context.Context, id int) (*models.Ordonnance, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, doctor_id, patient_national_id, patient_name, patient_surname, body, status, created_at, updated_at
		 FROM ordonnances WHERE id=$1`, id)

	var o models.Ordonnance
	err := row.Scan(&o.ID, &o.DoctorID, &o.PatientNationalID, &o.PatientName,
		&o.PatientSurname, &o.Body, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetWithDoctor joins the issuing doctor, used for the PDF export.
func (r *OrdonnanceRepository) GetWithDoctor(ctx context.Context, id int) (*models.OrdonnanceWithDoctor, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT o.id, o.doctor_id, o.patient_national_id, o.patient_name, o.patient_surname,
		        o.body, o.status, o.created_at, o.updated_at,
		        d.name, d.surname, d.specialty
		 FROM ordonnances o
		 JOIN doctors d ON o.doctor_id = d.id
		 WHERE o.id=$1`, id)

	var o models.OrdonnanceWithDoctor
	err := row.Scan(&o.ID, &o.DoctorID, &o.PatientNationalID, &o.PatientName, &o.PatientSurname,
		&o.Body, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.DoctorName, &o.DoctorSurname, &o.DoctorSpecialty)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrdonnanceRepository) List(ctx context.Context) ([]models.OrdonnanceWithDoctor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT o.id, o.doctor_id, o.patient_national_id, o.patient_name, o.patient_surname,
		        o.body, o.status, o.created_at, o.updated_at,
		        COALESCE(d.name, ''), COALESCE(d.surname, ''), COALESCE(d.specialty, '')
		 FROM ordonnances o
		 LEFT JOIN doctors d ON o.doctor_id = d.id
		 ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ordonnances []models.OrdonnanceWithDoctor
	for rows.Next() {
		var o models.OrdonnanceWithDoctor
		err := rows.Scan(&o.ID, &o.DoctorID, &o.PatientNationalID, &o.PatientName, &o.PatientSurname,
			&o.Body, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.DoctorName, &o.DoctorSurname, &o.DoctorSpecialty)
		if err != nil {
			return nil, err
		}
		ordonnances = append(ordonnances, o)
	}
	return ordonnances, rows.Err()
}

func (r *OrdonnanceRepository) Update(ctx context.Context, o *models.Ordonnance) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE ordonnances SET patient_national_id=$1, patient_name=$2, patient_surname=$3, body=$4, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$5`,
		o.PatientNationalID, o.PatientName, o.PatientSurname, o.Body, o.ID)
	return tag.RowsAffected(), err
}

func (r *OrdonnanceRepository) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE ordonnances SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return tag.RowsAffected(), err
}

func (r *OrdonnanceRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM ordonnances WHERE id=$1`, id)
	return tag.RowsAffected(), err
}
