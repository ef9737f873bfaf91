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

type DoctorHandler struct {
	Service *services.DoctorService
}

func NewDoctorHandler(s *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: s}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	doctor, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	doctor, err := h.Service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.Service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	doctor, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
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

func (h *DoctorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ToggleActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		httpx.JSONError(w, http.StatusBadRequest, "is_active est obligatoire", "")
		return
	}

	doctor, err := h.Service.ToggleActive(r.Context(), id, *req.IsActive)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "médecin supprimé"})
}
