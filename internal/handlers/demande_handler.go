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

type DemandeHandler struct {
	Service *services.DemandeService
}

func NewDemandeHandler(s *services.DemandeService) *DemandeHandler {
	return &DemandeHandler{Service: s}
}

func (h *DemandeHandler) CreateDemande(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDemandeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	demande, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, demande)
}

func (h *DemandeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "statut mis à jour"})
}

// ListByPharmacy returns a pharmacy's demandes with the joined supplier
// and a per-status summary.
func (h *DemandeHandler) ListByPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacyID, _ := strconv.Atoi(mux.Vars(r)["id"])

	resp, err := h.Service.ListByPharmacy(r.Context(), pharmacyID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, resp)
}
