package services

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/auth"
	"pharma-backend/internal/cache"
	"pharma-backend/internal/models"
	"pharma-backend/internal/validation"
)

// userStore is the slice of UserRepository the account lifecycle needs.
type userStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) (int64, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error)
	SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

var userRoles = map[string]bool{
	"admin":      true,
	"pharmacist": true,
	"doctor":     true,
	"supplier":   true,
}

// UserService manages login accounts and authentication.
type UserService struct {
	Repo       userStore
	JWTManager *auth.JWTManager
}

func NewUserService(repo userStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Password("password", req.Password, v)
	if req.Role != "" && !userRoles[req.Role] {
		v["role"] = "rôle inconnu"
	}
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, 0); err != nil {
		return nil, apperrors.Persistence("check user email", err)
	} else if exists {
		return nil, apperrors.Validation("un compte avec cet email existe déjà")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, apperrors.FromPg("create user", "compte", err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get user", "compte", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list users", "compte", err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	if req.Role != "" && !userRoles[req.Role] {
		v["role"] = "rôle inconnu"
	}
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	if exists, err := s.Repo.EmailExists(ctx, req.Email, id); err != nil {
		return nil, apperrors.Persistence("check user email", err)
	} else if exists {
		return nil, apperrors.Validation("un compte avec cet email existe déjà")
	}

	user := &models.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role}
	affected, err := s.Repo.Update(ctx, user)
	if err != nil {
		return nil, apperrors.FromPg("update user", "compte", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("compte")
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Validation("ancien et nouveau mot de passe obligatoires")
	}
	if len(req.NewPassword) < validation.MinPasswordLength {
		return apperrors.Validation("nouveau mot de passe: au moins 6 caractères")
	}

	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return apperrors.FromPg("get user", "compte", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.OldPassword) {
		return apperrors.Validation("ancien mot de passe incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Persistence("hash password", err)
	}
	if _, err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return apperrors.FromPg("update password", "compte", err)
	}
	cache.InvalidateAuth(ctx, user.Email, req.OldPassword)
	return nil
}

func (s *UserService) ToggleActive(ctx context.Context, id int, isActive bool) (*models.User, error) {
	affected, err := s.Repo.SetActiveStatus(ctx, id, isActive)
	if err != nil {
		return nil, apperrors.FromPg("toggle user", "compte", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("compte")
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperrors.FromPg("delete user", "compte", err)
	}
	if affected == 0 {
		return apperrors.NotFound("compte")
	}
	return nil
}

// Login authenticates an account and returns a JWT token with a public
// projection. Accounts with 2FA enabled receive a temp token instead and
// must complete the second step.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("email et mot de passe obligatoires")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Auth("email not found")
		}
		return nil, apperrors.Persistence("get user by email", err)
	}

	// Redis fast path skips bcrypt for recently verified credentials
	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, apperrors.Auth("incorrect password")
		}
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, apperrors.Persistence("generate temp token", err)
		}
		return &models.AuthResponse{TempToken: tempToken, Requires2FA: true}, nil
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Persistence("generate token", err)
	}
	log.Printf("[Auth] Login: %s (%s)", user.Email, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// IssueToken finalizes a login for an already verified account. Used by
// the second step of the 2FA flow.
func (s *UserService) IssueToken(ctx context.Context, userID int) (*models.AuthResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.FromPg("get user", "utilisateur", err)
	}
	if !user.IsActive {
		return nil, apperrors.Auth("compte désactivé")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Persistence("generate token", err)
	}
	log.Printf("[Auth] Login (2FA): %s (%s)", user.Email, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}
