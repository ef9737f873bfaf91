package models

import "time"

// Pharmacy is the pharmacy profile. AccountID links the pharmacy to its
// login account in users; email changes and deletes follow that link
// inside one transaction.
type Pharmacy struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	President string    `json:"president"`
	IsActive  bool      `json:"is_active"`
	AccountID *int      `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePharmacyRequest creates the pharmacy and its linked login account
type CreatePharmacyRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	President string `json:"president"`
}

type UpdatePharmacyRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	President string `json:"president"`
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active"`
}
