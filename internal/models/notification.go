package models

import "time"

// Notification statuses are a separate vocabulary from demande statuses:
// the supplier's review decision does not feed back into the demande.
const (
	NotificationStatusPending  = "pending"
	NotificationStatusAccepted = "accepted"
	NotificationStatusRefused  = "refused"
)

type Notification struct {
	ID         int       `json:"id"`
	Medicament string    `json:"medicament"`
	Quantity   int       `json:"quantity"`
	PharmacyID int       `json:"pharmacy_id"`
	SupplierID *int      `json:"supplier_id,omitempty"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	DemandeID  *int      `json:"demande_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NotificationWithPharmacy joins the requesting pharmacy onto a
// supplier-facing notification listing.
type NotificationWithPharmacy struct {
	Notification
	PharmacyName      string `json:"pharmacy_name"`
	PharmacyPresident string `json:"pharmacy_president"`
}

type CreateNotificationRequest struct {
	Medicament string `json:"medicament"`
	Quantity   int    `json:"quantity"`
	PharmacyID int    `json:"pharmacy_id"`
	SupplierID int    `json:"supplier_id"`
	Message    string `json:"message"`
}
