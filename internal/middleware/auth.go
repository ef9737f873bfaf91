package middleware

import (
	"context"
	"net/http"
	"strings"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/pkg/httpx"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// authenticate validates the Bearer token and re-checks the account in
// the database so deactivations take effect immediately.
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization header required", "")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		httpx.JSONError(w, http.StatusUnauthorized, "Invalid authorization format", "")
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Invalid or expired token", "")
		return nil, false
	}

	user, err := m.userRepo.Get(r.Context(), claims.UserID)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "User not found", "")
		return nil, false
	}
	if !user.IsActive {
		httpx.JSONError(w, http.StatusForbidden, "Compte désactivé. Contactez l'administrateur.", "")
		return nil, false
	}
	return user, true
}

func withUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	ctx = context.WithValue(ctx, EmailKey, user.Email)
	return context.WithValue(ctx, RoleKey, user.Role)
}

// Authenticate validates JWT tokens on protected routes
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// RequireRole ensures the authenticated account holds one of the
// allowed roles. Role is read from the database, not the token.
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := m.authenticate(w, r)
			if !ok {
				return
			}

			hasRole := false
			for _, role := range allowedRoles {
				if user.Role == role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				httpx.JSONError(w, http.StatusForbidden, "Accès refusé: permissions insuffisantes", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireAdmin ensures the account has the admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole("admin")(next)
}

// GetUserIDFromContext extracts the account ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmailFromContext extracts email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
