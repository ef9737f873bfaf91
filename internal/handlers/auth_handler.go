package handlers

import (
	"encoding/json"
	"net/http"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/models"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/httpx"
)

type AuthHandler struct {
	Users      *services.UserService
	TOTP       *services.TOTPService
	JWTManager *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		Users:      users,
		TOTP:       totp,
		JWTManager: jwtManager,
	}
}

// Login authenticates an account. Accounts with 2FA enabled get a temp
// token and must call VerifyTwoFactor to finish.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	authResp, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, authResp)
}

// VerifyTwoFactor completes a 2FA login with the temp token and a TOTP code
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req models.TwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if req.TempToken == "" || req.Code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "temp_token et code obligatoires", "")
		return
	}

	claims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Invalid or expired token", "")
		return
	}

	if err := h.TOTP.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		httpx.Error(w, err)
		return
	}

	authResp, err := h.Users.IssueToken(r.Context(), claims.UserID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, authResp)
}
