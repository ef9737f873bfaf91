package models

import "time"

// Demande statuses form a closed set; receiving a demande credits the
// matching medicament stock.
const (
	DemandeStatusPending      = "pending"
	DemandeStatusAccepted     = "accepted"
	DemandeStatusReceived     = "received"
	DemandeStatusNotDelivered = "not-delivered"
)

type Demande struct {
	ID         int        `json:"id"`
	PharmacyID int        `json:"pharmacy_id"`
	SupplierID *int       `json:"supplier_id,omitempty"`
	Medicament string     `json:"medicament"`
	Quantity   int        `json:"quantity"`
	Status     string     `json:"status"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SupplierRef is the supplier projection joined onto a demande listing.
// A nil SupplierRef means the demande has no target supplier.
type SupplierRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DemandeWithSupplier is one row of a pharmacy's demande listing.
type DemandeWithSupplier struct {
	Demande
	Supplier *SupplierRef `json:"supplier"`
}

// DemandeSummary is the derived per-status breakdown of a listing.
type DemandeSummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Received int `json:"received"`
}

// DemandeListResponse is the body of GET /api/demandes/pharmacie/{id}.
type DemandeListResponse struct {
	Demandes []DemandeWithSupplier `json:"demandes"`
	Summary  DemandeSummary        `json:"summary"`
}

type CreateDemandeRequest struct {
	PharmacyID int    `json:"pharmacy_id"`
	SupplierID int    `json:"supplier_id"`
	Medicament string `json:"medicament"`
	Quantity   int    `json:"quantity"`
	Message    string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
