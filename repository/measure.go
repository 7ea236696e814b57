package repository

import (
	"context"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var measureOrdering = map[string]string{
	"id":           "id",
	"nombre":       "name",
	"avance_pct":   "progress_pct",
	"fecha_inicio": "start_date",
	"fecha_fin":    "end_date",
}

// MeasureRepository is the gorm-backed store behind service.MeasureService.
type MeasureRepository struct {
	db *gorm.DB
}

func NewMeasureRepository(db *gorm.DB) *MeasureRepository {
	return &MeasureRepository{db: db}
}

func (r *MeasureRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Region").Preload("Source")
}

func (r *MeasureRepository) Create(ctx context.Context, in domain.MeasureInput) (*domain.Measure, error) {
	row := entity.Measure{
		Name:        in.Name,
		RegionID:    in.RegionID,
		SourceID:    in.SourceID,
		Objective:   in.Objective,
		ProgressPct: in.ProgressPct,
		StartDate:   toStorageDate(in.StartDate),
		EndDate:     toStorageDatePtr(in.EndDate),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *MeasureRepository) List(ctx context.Context) ([]domain.Measure, error) {
	var rows []entity.Measure
	if err := r.withRelations(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return mapSlice(rows, toDomainMeasure), nil
}

// GetByID fails with domain.ErrNotFound when no row has the id.
func (r *MeasureRepository) GetByID(ctx context.Context, id uint) (*domain.Measure, error) {
	var row entity.Measure
	if err := r.withRelations(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	measure := toDomainMeasure(row)
	return &measure, nil
}

// Update loads the row, writes only the fields set in the patch and returns
// the stored result.
func (r *MeasureRepository) Update(ctx context.Context, id uint, patch domain.MeasurePatch) (*domain.Measure, error) {
	var row entity.Measure
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}

	changes := measureChanges(patch)
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(&row).Omit(clause.Associations).Updates(changes).Error; err != nil {
			return nil, translateError(err)
		}
	}
	return r.GetByID(ctx, id)
}

func measureChanges(patch domain.MeasurePatch) map[string]interface{} {
	changes := map[string]interface{}{}
	if patch.Name.Set {
		changes["name"] = patch.Name.Value
	}
	if patch.RegionID.Set {
		changes["region_id"] = patch.RegionID.Value
	}
	if patch.SourceID.Set {
		if patch.SourceID.Value == nil {
			changes["source_id"] = nil
		} else {
			changes["source_id"] = *patch.SourceID.Value
		}
	}
	if patch.Objective.Set {
		changes["objective"] = patch.Objective.Value
	}
	if patch.ProgressPct.Set {
		changes["progress_pct"] = patch.ProgressPct.Value
	}
	if patch.StartDate.Set {
		changes["start_date"] = toStorageDate(patch.StartDate.Value)
	}
	if patch.EndDate.Set {
		if patch.EndDate.Value == nil {
			changes["end_date"] = nil
		} else {
			changes["end_date"] = toStorageDate(*patch.EndDate.Value)
		}
	}
	return changes
}

// Delete removes the row if present; deleting a missing id is not an error.
func (r *MeasureRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.Measure{}, "id = ?", id).Error)
}

func (r *MeasureRepository) Query(ctx context.Context, filter domain.MeasureFilter) (domain.PageResult[domain.Measure], error) {
	var result domain.PageResult[domain.Measure]

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.RegionID != nil {
			db = db.Where("region_id = ?", *filter.RegionID)
		}
		if filter.SourceID != nil {
			db = db.Where("source_id = ?", *filter.SourceID)
		}
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			db = db.Where("LOWER(name) LIKE ? OR LOWER(objective) LIKE ?", pattern, pattern)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entity.Measure{}).Scopes(scope).Count(&result.Count).Error; err != nil {
		return result, translateError(err)
	}

	var rows []entity.Measure
	query := orderBy(r.withRelations(ctx).Scopes(scope), "measures", filter.Ordering, measureOrdering, []string{"id"})
	if err := paginate(query, filter.Page).Find(&rows).Error; err != nil {
		return result, translateError(err)
	}
	result.Results = mapSlice(rows, toDomainMeasure)
	return result, nil
}

// Recent returns the newest measures by start date, newest id first on ties.
func (r *MeasureRepository) Recent(ctx context.Context, limit int) ([]domain.Measure, error) {
	var rows []entity.Measure
	err := r.withRelations(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "start_date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return mapSlice(rows, toDomainMeasure), nil
}

func (r *MeasureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Measure{}).Count(&count).Error
	return count, translateError(err)
}

// AverageProgress is the mean progress over all measures, 0 when there are none.
func (r *MeasureRepository) AverageProgress(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&entity.Measure{}).
		Select("COALESCE(AVG(progress_pct), 0)").
		Scan(&avg).Error
	return avg, translateError(err)
}
