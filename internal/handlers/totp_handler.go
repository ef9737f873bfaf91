package handlers

import (
	"encoding/json"
	"net/http"

	"pharma-backend/internal/middleware"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/httpx"
)

type TOTPHandler struct {
	Service *services.TOTPService
}

func NewTOTPHandler(s *services.TOTPService) *TOTPHandler {
	return &TOTPHandler{Service: s}
}

// Setup starts 2FA enrollment for the authenticated admin.
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	setup, err := h.Service.GenerateSetup(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, setup)
}

// Verify confirms the enrollment code and turns 2FA on.
func (h *TOTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "code est obligatoire", "")
		return
	}

	if err := h.Service.VerifyAndEnable(r.Context(), userID, req.Code); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "2FA activée"})
}

// Disable turns 2FA off after re-checking the password and a valid code.
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.Service.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "2FA désactivée"})
}
