package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/validation"
)

type SupplierService struct {
	Repo *repositories.SupplierRepository
}

func NewSupplierService(repo *repositories.SupplierRepository) *SupplierService {
	return &SupplierService{Repo: repo}
}

func (s *SupplierService) Create(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Phone("phone", req.Phone, v)
	validation.Password("password", req.Password, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, 0); err != nil {
		return nil, apperrors.Persistence("check supplier email", err)
	} else if exists {
		return nil, apperrors.Validation("un fournisseur avec cet email existe déjà")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	supplier := &models.Supplier{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, supplier); err != nil {
		return nil, apperrors.FromPg("create supplier", "fournisseur", err)
	}
	return supplier, nil
}

func (s *SupplierService) Get(ctx context.Context, id int) (*models.Supplier, error) {
	sup, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get supplier", "fournisseur", err)
	}
	return sup, nil
}

func (s *SupplierService) List(ctx context.Context) ([]*models.Supplier, error) {
	suppliers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list suppliers", "fournisseur", err)
	}
	if suppliers == nil {
		suppliers = []*models.Supplier{}
	}
	return suppliers, nil
}

func (s *SupplierService) Update(ctx context.Context, id int, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Phone("phone", req.Phone, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, id); err != nil {
		return nil, apperrors.Persistence("check supplier email", err)
	} else if exists {
		return nil, apperrors.Validation("un fournisseur avec cet email existe déjà")
	}

	supplier := &models.Supplier{
		ID:      id,
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	affected, err := s.Repo.Update(ctx, supplier)
	if err != nil {
		return nil, apperrors.FromPg("update supplier", "fournisseur", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("fournisseur")
	}
	return s.Get(ctx, id)
}

func (s *SupplierService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Validation("ancien et nouveau mot de passe obligatoires")
	}
	if len(req.NewPassword) < validation.MinPasswordLength {
		return apperrors.Validation("nouveau mot de passe: au moins 6 caractères")
	}

	supplier, err := s.Repo.Get(ctx, id)
	if err != nil {
		return apperrors.FromPg("get supplier", "fournisseur", err)
	}
	if !auth.VerifyPassword(supplier.PasswordHash, req.OldPassword) {
		return apperrors.Validation("ancien mot de passe incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Persistence("hash password", err)
	}
	if _, err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return apperrors.FromPg("update supplier password", "fournisseur", err)
	}
	return nil
}

func (s *SupplierService) ToggleActive(ctx context.Context, id int, isActive bool) (*models.Supplier, error) {
	affected, err := s.Repo.SetActiveStatus(ctx, id, isActive)
	if err != nil {
		return nil, apperrors.FromPg("toggle supplier", "fournisseur", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("fournisseur")
	}
	return s.Get(ctx, id)
}

func (s *SupplierService) Delete(ctx context.Context, id int) error {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperrors.FromPg("delete supplier", "fournisseur", err)
	}
	if affected == 0 {
		return apperrors.NotFound("fournisseur")
	}
	return nil
}
