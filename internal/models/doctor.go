package models

import "time"

type Doctor struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	NationalID   string    `json:"national_id"`
	Specialty    string    `json:"specialty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateDoctorRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"national_id"`
	Specialty  string `json:"specialty"`
}

type UpdateDoctorRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
	Specialty  string `json:"specialty"`
}
