package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/validation"
)

type DoctorService struct {
	Repo *repositories.DoctorRepository
}

func NewDoctorService(repo *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{Repo: repo}
}

func (s *DoctorService) Create(ctx context.Context, req *models.CreateDoctorRequest) (*models.Doctor, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Password("password", req.Password, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, 0); err != nil {
		return nil, apperrors.Persistence("check doctor email", err)
	} else if exists {
		return nil, apperrors.Validation("un médecin avec cet email existe déjà")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	doctor := &models.Doctor{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: hash,
		NationalID:   req.NationalID,
		Specialty:    req.Specialty,
	}
	if err := s.Repo.Create(ctx, doctor); err != nil {
		return nil, apperrors.FromPg("create doctor", "médecin", err)
	}
	return doctor, nil
}

func (s *DoctorService) Get(ctx context.Context, id int) (*models.Doctor, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get doctor", "médecin", err)
	}
	return d, nil
}

func (s *DoctorService) List(ctx context.Context) ([]*models.Doctor, error) {
	doctors, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list doctors", "médecin", err)
	}
	if doctors == nil {
		doctors = []*models.Doctor{}
	}
	return doctors, nil
}

func (s *DoctorService) Update(ctx context.Context, id int, req *models.UpdateDoctorRequest) (*models.Doctor, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, id); err != nil {
		return nil, apperrors.Persistence("check doctor email", err)
	} else if exists {
		return nil, apperrors.Validation("un médecin avec cet email existe déjà")
	}

	doctor := &models.Doctor{
		ID:         id,
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		NationalID: req.NationalID,
		Specialty:  req.Specialty,
	}
	affected, err := s.Repo.Update(ctx, doctor)
	if err != nil {
		return nil, apperrors.FromPg("update doctor", "médecin", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("médecin")
	}
	return s.Get(ctx, id)
}

func (s *DoctorService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Validation("ancien et nouveau mot de passe obligatoires")
	}
	if len(req.NewPassword) < validation.MinPasswordLength {
		return apperrors.Validation("nouveau mot de passe: au moins 6 caractères")
	}

	doctor, err := s.Repo.Get(ctx, id)
	if err != nil {
		return apperrors.FromPg("get doctor", "médecin", err)
	}
	if !auth.VerifyPassword(doctor.PasswordHash, req.OldPassword) {
		return apperrors.Validation("ancien mot de passe incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Persistence("hash password", err)
	}
	if _, err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return apperrors.FromPg("update doctor password", "médecin", err)
	}
	return nil
}

func (s *DoctorService) ToggleActive(ctx context.Context, id int, isActive bool) (*models.Doctor, error) {
	affected, err := s.Repo.SetActiveStatus(ctx, id, isActive)
	if err != nil {
		return nil, apperrors.FromPg("toggle doctor", "médecin", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("médecin")
	}
	return s.Get(ctx, id)
}

func (s *DoctorService) Delete(ctx context.Context, id int) error {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperrors.FromPg("delete doctor", "médecin", err)
	}
	if affected == 0 {
		return apperrors.NotFound("médecin")
	}
	return nil
}
