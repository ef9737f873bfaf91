package services

import (
	"context"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/validation"
)

var ordonnanceStatuses = map[string]bool{
	models.OrdonnanceStatusPending: true,
	models.OrdonnanceStatusDone:    true,
}

type OrdonnanceService struct {
	Repo *repositories.OrdonnanceRepository
}

func NewOrdonnanceService(repo *repositories.OrdonnanceRepository) *OrdonnanceService {
	return &OrdonnanceService{Repo: repo}
}

func (s *OrdonnanceService) Create(ctx context.Context, req *models.CreateOrdonnanceRequest) (*models.Ordonnance, error) {
	v := validation.Violations{}
	validation.PositiveInt("doctor_id", req.DoctorID, v)
	validation.Required("patient_national_id", req.PatientNationalID, v)
	validation.Required("patient_name", req.PatientName, v)
	validation.Required("body", req.Body, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	o := &models.Ordonnance{
		DoctorID:          req.DoctorID,
		PatientNationalID: req.PatientNationalID,
		PatientName:       req.PatientName,
		PatientSurname:    req.PatientSurname,
		Body:              req.Body,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, apperrors.FromPg("create ordonnance", "ordonnance", err)
	}
	return o, nil
}

func (s *OrdonnanceService) Get(ctx context.Context, id int) (*models.Ordonnance, error) {
	o, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get ordonnance", "ordonnance", err)
	}
	return o, nil
}

func (s *OrdonnanceService) GetWithDoctor(ctx context.Context, id int) (*models.OrdonnanceWithDoctor, error) {
	o, err := s.Repo.GetWithDoctor(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("get ordonnance", "ordonnance", err)
	}
	return o, nil
}

func (s *OrdonnanceService) List(ctx context.Context) ([]models.OrdonnanceWithDoctor, error) {
	ordonnances, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list ordonnances", "ordonnance", err)
	}
	if ordonnances == nil {
		ordonnances = []models.OrdonnanceWithDoctor{}
	}
	return ordonnances, nil
}

func (s *OrdonnanceService) Update(ctx context.Context, id int, req *models.UpdateOrdonnanceRequest) (*models.Ordonnance, error) {
	v := validation.Violations{}
	validation.Required("patient_national_id", req.PatientNationalID, v)
	validation.Required("patient_name", req.PatientName, v)
	validation.Required("body", req.Body, v)
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	o := &models.Ordonnance{
		ID:                id,
		PatientNationalID: req.PatientNationalID,
		PatientName:       req.PatientName,
		PatientSurname:    req.PatientSurname,
		Body:              req.Body,
	}
	affected, err := s.Repo.Update(ctx, o)
	if err != nil {
		return nil, apperrors.FromPg("update ordonnance", "ordonnance", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("ordonnance")
	}
	return s.Get(ctx, id)
}

func (s *OrdonnanceService) UpdateStatus(ctx context.Context, id int, status string) (*models.Ordonnance, error) {
	if !ordonnanceStatuses[status] {
		return nil, apperrors.Validation("statut invalide: %s", status)
	}
	affected, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperrors.FromPg("update ordonnance status", "ordonnance", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("ordonnance")
	}
	return s.Get(ctx, id)
}

func (s *OrdonnanceService) Delete(ctx context.Context, id int) error {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperrors.FromPg("delete ordonnance", "ordonnance", err)
	}
	if affected == 0 {
		return apperrors.NotFound("ordonnance")
	}
	return nil
}
