package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pharma-backend/internal/models"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/httpx"
)

type PharmacyHandler struct {
	Service *services.PharmacyService
}

func NewPharmacyHandler(s *services.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{Service: s}
}

func (h *PharmacyHandler) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePharmacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	pharmacy, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, pharmacy)
}

func (h *PharmacyHandler) GetPharmacy(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pharmacy, err := h.Service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, pharmacy)
}

func (h *PharmacyHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies, err := h.Service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, pharmacies)
}

func (h *PharmacyHandler) UpdatePharmacy(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePharmacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	pharmacy, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, pharmacy)
}

func (h *PharmacyHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), id, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "mot de passe mis à jour"})
}

// Deactivate toggles the pharmacy's active flag. Defaults to false when
// the body carries no is_active field.
func (h *PharmacyHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	// Body is optional; an empty body means deactivate.
	var req models.ToggleActiveRequest
	json.NewDecoder(r.Body).Decode(&req)

	isActive := false
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	pharmacy, err := h.Service.ToggleActive(r.Context(), id, isActive)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, pharmacy)
}

func (h *PharmacyHandler) DeletePharmacy(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "pharmacie supprimée"})
}
