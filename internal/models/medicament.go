package models

import "time"

// Medicament is a pharmacy's on-hand quantity record for one medication.
type Medicament struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	PharmacyID int       `json:"pharmacy_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateMedicamentRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PharmacyID int    `json:"pharmacy_id"`
}

// SetQuantityRequest is an absolute inventory correction.
// Quantity is a pointer so a missing field is distinguishable from zero.
type SetQuantityRequest struct {
	Quantity *int `json:"quantite"`
}
