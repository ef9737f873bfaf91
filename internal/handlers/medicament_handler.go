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

type MedicamentHandler struct {
	Service *services.MedicamentService
}

func NewMedicamentHandler(s *services.MedicamentService) *MedicamentHandler {
	return &MedicamentHandler{Service: s}
}

func (h *MedicamentHandler) CreateMedicament(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMedicamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	medicament, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, medicament)
}

func (h *MedicamentHandler) ListMedicaments(w http.ResponseWriter, r *http.Request) {
	medicaments, err := h.Service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, medicaments)
}

func (h *MedicamentHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	medicament, err := h.Service.SetQuantity(r.Context(), id, &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, medicament)
}
