package repository

import (
	"context"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/gorm"
)

var waterSourceOrdering = map[string]string{
	"id":                "id",
	"tipo":              "category",
	"capacidad_m3d":     "capacity_m3d",
	"energia_renovable": "renewable_energy",
}

type WaterSourceRepository struct {
	db *gorm.DB
}

func NewWaterSourceRepository(db *gorm.DB) *WaterSourceRepository {
	return &WaterSourceRepository{db: db}
}

func (r *WaterSourceRepository) List(ctx context.Context) ([]domain.WaterSource, error) {
	var rows []entity.WaterSource
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return mapSlice(rows, toDomainWaterSource), nil
}

func (r *WaterSourceRepository) Query(ctx context.Context, filter domain.WaterSourceFilter) (domain.PageResult[domain.WaterSource], error) {
	var result domain.PageResult[domain.WaterSource]

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.CategoryContains != "" {
			db = db.Where("LOWER(category) LIKE ?", containsPattern(filter.CategoryContains))
		}
		if filter.DescriptionSearch != "" {
			db = db.Where("LOWER(description) LIKE ?", containsPattern(filter.DescriptionSearch))
		}
		if filter.Capacity != nil {
			db = db.Where("capacity_m3d = ?", *filter.Capacity)
		}
		if filter.CapacityGTE != nil {
			db = db.Where("capacity_m3d >= ?", *filter.CapacityGTE)
		}
		if filter.CapacityLTE != nil {
			db = db.Where("capacity_m3d <= ?", *filter.CapacityLTE)
		}
		if filter.RenewableEnergy != nil {
			db = db.Where("renewable_energy = ?", *filter.RenewableEnergy)
		}
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			db = db.Where("LOWER(category) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entity.WaterSource{}).Scopes(scope).Count(&result.Count).Error; err != nil {
		return result, translateError(err)
	}

	var rows []entity.WaterSource
	query := orderBy(r.db.WithContext(ctx).Scopes(scope), "water_sources", filter.Ordering, waterSourceOrdering, []string{"id"})
	if err := paginate(query, filter.Page).Find(&rows).Error; err != nil {
		return result, translateError(err)
	}
	result.Results = mapSlice(rows, toDomainWaterSource)
	return result, nil
}

func (r *WaterSourceRepository) GetByID(ctx context.Context, id uint) (*domain.WaterSource, error) {
	var row entity.WaterSource
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	source := toDomainWaterSource(row)
	return &source, nil
}

func (r *WaterSourceRepository) Create(ctx context.Context, in domain.WaterSourceInput) (*domain.WaterSource, error) {
	row := entity.WaterSource{
		Category:        string(in.Category),
		CapacityM3D:     in.CapacityM3D,
		RenewableEnergy: in.RenewableEnergy,
		Description:     in.Description,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *WaterSourceRepository) Update(ctx context.Context, id uint, in domain.WaterSourceInput) (*domain.WaterSource, error) {
	var row entity.WaterSource
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}

	err := r.db.WithContext(ctx).Model(&row).Select("category", "capacity_m3d", "renewable_energy", "description").
		Updates(map[string]interface{}{
			"category":         string(in.Category),
			"capacity_m3d":     in.CapacityM3D,
			"renewable_energy": in.RenewableEnergy,
			"description":      in.Description,
		}).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, id)
}

// Delete detaches referencing measures through ON DELETE SET NULL.
func (r *WaterSourceRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.WaterSource{}, "id = ?", id).Error)
}

func (r *WaterSourceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.WaterSource{}).Count(&count).Error
	return count, translateError(err)
}
