package repository

import (
	"context"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var indicatorOrdering = map[string]string{
	"id":     "id",
	"fecha":  "recorded_on",
	"medida": "measure_id",
}

type IndicatorRepository struct {
	db *gorm.DB
}

func NewIndicatorRepository(db *gorm.DB) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

func (r *IndicatorRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Measure").
		Preload("Measure.Region").
		Preload("Measure.Source")
}

// Query lists indicators; without an explicit ordering the newest date comes first.
func (r *IndicatorRepository) Query(ctx context.Context, filter domain.IndicatorFilter) (domain.PageResult[domain.Indicator], error) {
	var result domain.PageResult[domain.Indicator]

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.MeasureID != nil {
			db = db.Where("measure_id = ?", *filter.MeasureID)
		}
		if filter.Search != "" {
			matching := r.db.Model(&entity.Measure{}).
				Select("id").
				Where("LOWER(name) LIKE ?", containsPattern(filter.Search))
			db = db.Where("measure_id IN (?)", matching)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entity.Indicator{}).Scopes(scope).Count(&result.Count).Error; err != nil {
		return result, translateError(err)
	}

	var rows []entity.Indicator
	query := orderBy(r.withRelations(ctx).Scopes(scope), "indicators", filter.Ordering, indicatorOrdering, []string{"-fecha", "-id"})
	if err := paginate(query, filter.Page).Find(&rows).Error; err != nil {
		return result, translateError(err)
	}
	result.Results = mapSlice(rows, toDomainIndicator)
	return result, nil
}

func (r *IndicatorRepository) GetByID(ctx context.Context, id uint) (*domain.Indicator, error) {
	var row entity.Indicator
	if err := r.withRelations(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	indicator := toDomainIndicator(row)
	return &indicator, nil
}

func (r *IndicatorRepository) Create(ctx context.Context, in domain.IndicatorInput) (*domain.Indicator, error) {
	row := entity.Indicator{
		MeasureID:         in.MeasureID,
		RecordedOn:        toStorageDate(in.Date),
		ReusedVolumeM3D:   in.ReusedVolumeM3D,
		LossPct:           in.LossPct,
		GroundwaterLevelM: in.GroundwaterLevelM,
		EcologicalFlowPct: in.EcologicalFlowPct,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *IndicatorRepository) Update(ctx context.Context, id uint, in domain.IndicatorInput) (*domain.Indicator, error) {
	var row entity.Indicator
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}

	err := r.db.WithContext(ctx).Model(&row).Omit(clause.Associations).
		Select("measure_id", "recorded_on", "reused_volume_m3d", "loss_pct", "groundwater_level_m", "ecological_flow_pct").
		Updates(map[string]interface{}{
			"measure_id":          in.MeasureID,
			"recorded_on":         toStorageDate(in.Date),
			"reused_volume_m3d":   in.ReusedVolumeM3D,
			"loss_pct":            in.LossPct,
			"groundwater_level_m": in.GroundwaterLevelM,
			"ecological_flow_pct": in.EcologicalFlowPct,
		}).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *IndicatorRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.Indicator{}, "id = ?", id).Error)
}

// Latest returns the most recent indicators by date.
func (r *IndicatorRepository) Latest(ctx context.Context, limit int) ([]domain.Indicator, error) {
	result, err := r.Query(ctx, domain.IndicatorFilter{Page: domain.Page{Number: 1, Size: limit}})
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (r *IndicatorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Indicator{}).Count(&count).Error
	return count, translateError(err)
}
