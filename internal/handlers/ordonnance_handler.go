package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pharma-backend/internal/models"
	"pharma-backend/internal/pdf"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/httpx"
)

type OrdonnanceHandler struct {
	Service *services.OrdonnanceService
}

func NewOrdonnanceHandler(s *services.OrdonnanceService) *OrdonnanceHandler {
	return &OrdonnanceHandler{Service: s}
}

func (h *OrdonnanceHandler) CreateOrdonnance(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrdonnanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	ordonnance, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ordonnance)
}

func (h *OrdonnanceHandler) GetOrdonnance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ordonnance, err := h.Service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ordonnance)
}

func (h *OrdonnanceHandler) ListOrdonnances(w http.ResponseWriter, r *http.Request) {
	ordonnances, err := h.Service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ordonnances)
}

func (h *OrdonnanceHandler) UpdateOrdonnance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateOrdonnanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	ordonnance, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ordonnance)
}

func (h *OrdonnanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	ordonnance, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ordonnance)
}

func (h *OrdonnanceHandler) DeleteOrdonnance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "ordonnance supprimée"})
}

// DownloadPDF streams the printable prescription.
func (h *OrdonnanceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ordonnance, err := h.Service.GetWithDoctor(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	doc, err := pdf.RenderOrdonnance(ordonnance)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "PDF generation failed", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ordonnance-%d.pdf"`, id))
	w.Write(doc)
}
