package models

import "time"

const (
	OrdonnanceStatusPending = "pending"
	OrdonnanceStatusDone    = "done"
)

// Ordonnance is a prescription issued by a doctor.
type Ordonnance struct {
	ID                int       `json:"id"`
	DoctorID          int       `json:"doctor_id"`
	PatientNationalID string    `json:"patient_national_id"`
	PatientName       string    `json:"patient_name"`
	PatientSurname    string    `json:"patient_surname"`
	Body              string    `json:"body"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OrdonnanceWithDoctor joins the issuing doctor's name for listings and
// the PDF export.
type OrdonnanceWithDoctor struct {
	Ordonnance
	DoctorName      string `json:"doctor_name"`
	DoctorSurname   string `json:"doctor_surname"`
	DoctorSpecialty string `json:"doctor_specialty"`
}

type CreateOrdonnanceRequest struct {
	DoctorID          int    `json:"doctor_id"`
	PatientNationalID string `json:"patient_national_id"`
	PatientName       string `json:"patient_name"`
	PatientSurname    string `json:"patient_surname"`
	Body              string `json:"body"`
}

type UpdateOrdonnanceRequest struct {
	PatientNationalID string `json:"patient_national_id"`
	PatientName       string `json:"patient_name"`
	PatientSurname    string `json:"patient_surname"`
	Body              string `json:"body"`
}
