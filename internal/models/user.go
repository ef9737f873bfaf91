package models

import "time"

// User is the login account record. Role-specific profile data lives in
// the pharmacies/doctors/suppliers tables.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin, pharmacist, doctor or supplier
	IsActive     bool      `json:"is_active"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TwoFactorRequest completes a login for accounts with 2FA enabled
type TwoFactorRequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	TempToken   string `json:"temp_token,omitempty"`
	Requires2FA bool   `json:"requires_2fa,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// CreateUserRequest represents the request body for creating a login account
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request body for updating a login account
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ChangePasswordRequest carries the old and new credential
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// TOTPSetupResponse carries the provisioning secret and QR code
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}
