package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/validation"
)

// pharmacyStore is the slice of PharmacyRepository the profile
// lifecycle needs. The WithAccount writes are transactional in the
// real implementation.
type pharmacyStore interface {
	CreateWithAccount(ctx context.Context, p *models.Pharmacy, account *models.User) error
	Get(ctx context.Context, id int) (*models.Pharmacy, error)
	List(ctx context.Context) ([]*models.Pharmacy, error)
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
	UpdateWithAccount(ctx context.Context, p *models.Pharmacy) (int64, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error)
	GetAccountHash(ctx context.Context, id int) (string, error)
	SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error)
	DeleteWithAccount(ctx context.Context, id int) (int64, error)
}

// accountEmailChecker pre-checks the login-account table, since a
// pharmacy's email must be free on both tables.
type accountEmailChecker interface {
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
}

// PharmacyService manages pharmacy profiles and their linked login
// accounts. Every write that touches both tables goes through one
// repository transaction.
type PharmacyService struct {
	Repo     pharmacyStore
	UserRepo accountEmailChecker
}

func NewPharmacyService(repo pharmacyStore, userRepo accountEmailChecker) *PharmacyService {
	return &PharmacyService{Repo: repo, UserRepo: userRepo}
}

// Create inserts the pharmacy and a pharmacist login account together.
// Email uniqueness is pre-checked against both tables; the DB UNIQUE
// constraints still back the check under concurrency.
func (s *PharmacyService) Create(ctx context.Context, req *models.CreatePharmacyRequest) (*models.Pharmacy, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Required("phone", req.Phone, v)
	validation.Phone("phone", req.Phone, v)
	validation.Password("password", req.Password, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, 0); err != nil {
		return nil, apperrors.Persistence("check pharmacy email", err)
	} else if exists {
		return nil, apperrors.Validation("une pharmacie avec cet email existe déjà")
	}
	if exists, err := s.UserRepo.EmailExists(ctx, req.Email, 0); err != nil {
		return nil, apperrors.Persistence("check account email", err)
	} else if exists {
		return nil, apperrors.Validation("un compte avec cet email existe déjà")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	pharmacy := &models.Pharmacy{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		President: req.President,
	}
	account := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Repo.CreateWithAccount(ctx, pharmacy, account); err != nil {
		return nil, apperrors.FromPg("create pharmacy", "pharmacie", err)
	}
	return pharmacy, nil
}

func (s *PharmacyService) Get(ctx context.Context, id int) (*models.Pharmacy, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get pharmacy", "pharmacie", err)
	}
	return p, nil
}

func (s *PharmacyService) List(ctx context.Context) ([]*models.Pharmacy, error) {
	pharmacies, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list pharmacies", "pharmacie", err)
	}
	if pharmacies == nil {
		pharmacies = []*models.Pharmacy{}
	}
	return pharmacies, nil
}

// Update writes the profile and propagates an email change to the
// linked login account in the same transaction.
func (s *PharmacyService) Update(ctx context.Context, id int, req *models.UpdatePharmacyRequest) (*models.Pharmacy, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Phone("phone", req.Phone, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, id); err != nil {
		return nil, apperrors.Persistence("check pharmacy email", err)
	} else if exists {
		return nil, apperrors.Validation("une pharmacie avec cet email existe déjà")
	}

	pharmacy := &models.Pharmacy{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		President: req.President,
	}
	affected, err := s.Repo.UpdateWithAccount(ctx, pharmacy)
	if err != nil {
		return nil, apperrors.FromPg("update pharmacy", "pharmacie", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("pharmacie")
	}
	return s.Get(ctx, id)
}

// ChangePassword verifies the old credential against the linked login
// account and stores the new hash there.
func (s *PharmacyService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Validation("ancien et nouveau mot de passe obligatoires")
	}
	if len(req.NewPassword) < validation.MinPasswordLength {
		return apperrors.Validation("nouveau mot de passe: au moins 6 caractères")
	}

	hash, err := s.Repo.GetAccountHash(ctx, id)
	if err != nil {
		return apperrors.FromPg("get pharmacy account", "pharmacie", err)
	}
	if !auth.VerifyPassword(hash, req.OldPassword) {
		return apperrors.Validation("ancien mot de passe incorrect")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Persistence("hash password", err)
	}
	affected, err := s.Repo.UpdatePassword(ctx, id, newHash)
	if err != nil {
		return apperrors.FromPg("update pharmacy password", "pharmacie", err)
	}
	if affected == 0 {
		return apperrors.NotFound("pharmacie")
	}
	return nil
}

func (s *PharmacyService) ToggleActive(ctx context.Context, id int, isActive bool) (*models.Pharmacy, error) {
	affected, err := s.Repo.SetActiveStatus(ctx, id, isActive)
	if err != nil {
		return nil, apperrors.FromPg("toggle pharmacy", "pharmacie", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("pharmacie")
	}
	return s.Get(ctx, id)
}

// Delete removes the pharmacy and its linked login account together.
func (s *PharmacyService) Delete(ctx context.Context, id int) error {
	affected, err := s.Repo.DeleteWithAccount(ctx, id)
	if err != nil {
		return apperrors.FromPg("delete pharmacy", "pharmacie", err)
	}
	if affected == 0 {
		return apperrors.NotFound("pharmacie")
	}
	return nil
}
