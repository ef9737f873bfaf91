package services

import (
	"context"
	"encoding/json"

	"pharma-backend/internal/apperrors"
	"pharma-backend/internal/cache"
	"pharma-backend/internal/models"
	"pharma-backend/internal/validation"
)

// medicamentStore is the slice of MedicamentRepository the stock
// ledger needs.
type medicamentStore interface {
	Create(ctx context.Context, m *models.Medicament) error
	Get(ctx context.Context, id int) (*models.Medicament, error)
	List(ctx context.Context) ([]*models.Medicament, error)
	SetQuantity(ctx context.Context, id int, quantity int) (int64, error)
	IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error)
}

// MedicamentService is the stock ledger: current on-hand quantity per
// medication per pharmacy.
type MedicamentService struct {
	Repo medicamentStore
}

func NewMedicamentService(repo medicamentStore) *MedicamentService {
	return &MedicamentService{Repo: repo}
}

// Create registers a stock item for a pharmacy. The (name, pharmacy)
// pair is unique; a duplicate surfaces as a validation failure.
func (s *MedicamentService) Create(ctx context.Context, req *models.CreateMedicamentRequest) (*models.Medicament, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.PositiveInt("pharmacy_id", req.PharmacyID, v)
	if req.Quantity < 0 {
		v["quantity"] = "ne peut pas être négative"
	}
	if !v.Empty() {
		return nil, apperrors.Validation("%s", v.First())
	}

	m := &models.Medicament{
		Name:       req.Name,
		Quantity:   req.Quantity,
		PharmacyID: req.PharmacyID,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, apperrors.FromPg("create medicament", "medicament", err)
	}
	cache.InvalidateStockList(ctx)
	return m, nil
}

// List returns all stock items alphabetically, served from the redis
// cache when fresh.
func (s *MedicamentService) List(ctx context.Context) ([]*models.Medicament, error) {
	if data, ok := cache.GetCachedStockList(ctx); ok {
		var items []*models.Medicament
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
	}

	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPg("list medicaments", "medicament", err)
	}
	if items == nil {
		items = []*models.Medicament{}
	}

	if data, err := json.Marshal(items); err == nil {
		cache.CacheStockList(ctx, data)
	}
	return items, nil
}

// SetQuantity is an absolute inventory correction.
func (s *MedicamentService) SetQuantity(ctx context.Context, id int, req *models.SetQuantityRequest) (*models.Medicament, error) {
	if req.Quantity == nil {
		return nil, apperrors.Validation("quantite est obligatoire")
	}
	if *req.Quantity < 0 {
		return nil, apperrors.Validation("quantite ne peut pas être négative")
	}

	affected, err := s.Repo.SetQuantity(ctx, id, *req.Quantity)
	if err != nil {
		return nil, apperrors.FromPg("set medicament quantity", "medicament", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("medicament")
	}
	cache.InvalidateStockList(ctx)

	m, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPg("read medicament", "medicament", err)
	}
	return m, nil
}

// IncrementQuantity credits stock atomically; it exists for the demande
// received transition and returns the rows matched so the caller can
// tell a no-op from a credit.
func (s *MedicamentService) IncrementQuantity(ctx context.Context, name string, pharmacyID, delta int) (int64, error) {
	affected, err := s.Repo.IncrementQuantity(ctx, name, pharmacyID, delta)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		cache.InvalidateStockList(ctx)
	}
	return affected, nil
}
