package service

import (
	"context"

	"github.com/tnqbao/gau-sequia-service/domain"
)

// MeasureStore is the persistence the measure service delegates to.
type MeasureStore interface {
	Create(ctx context.Context, in domain.MeasureInput) (*domain.Measure, error)
	List(ctx context.Context) ([]domain.Measure, error)
	GetByID(ctx context.Context, id uint) (*domain.Measure, error)
	Update(ctx context.Context, id uint, patch domain.MeasurePatch) (*domain.Measure, error)
	Delete(ctx context.Context, id uint) error
}

// MeasureService runs the measure business rules ahead of the store. Every
// measure write from the API and the panel goes through it.
type MeasureService struct {
	store MeasureStore
}

func NewMeasureService(store MeasureStore) *MeasureService {
	if store == nil {
		panic("measure store is required")
	}
	return &MeasureService{store: store}
}

func (s *MeasureService) CreateMeasure(ctx context.Context, in domain.MeasureInput) (*domain.Measure, error) {
	if err := domain.ValidateMeasureName(in.Name, domain.MsgMeasureNameTooShort); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, in)
}

func (s *MeasureService) ListMeasures(ctx context.Context) ([]domain.Measure, error) {
	return s.store.List(ctx)
}

func (s *MeasureService) GetMeasure(ctx context.Context, id uint) (*domain.Measure, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateMeasure applies a partial update. A missing id surfaces as
// domain.ErrNotFound from the store.
func (s *MeasureService) UpdateMeasure(ctx context.Context, id uint, patch domain.MeasurePatch) (*domain.Measure, error) {
	if patch.Name.Set {
		if err := domain.ValidateMeasureName(patch.Name.Value, domain.MsgMeasureNameTooShortUpdate); err != nil {
			return nil, err
		}
	}
	return s.store.Update(ctx, id, patch)
}

// DeleteMeasure is idempotent.
func (s *MeasureService) DeleteMeasure(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}
