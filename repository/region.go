package repository

import (
	"context"
	"strings"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/gorm"
)

var regionOrdering = map[string]string{
	"id":     "id",
	"nombre": "name",
}

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

// List returns every region ordered by name.
func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	var rows []entity.Region
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return mapSlice(rows, toDomainRegion), nil
}

func (r *RegionRepository) Query(ctx context.Context, filter domain.RegionFilter) (domain.PageResult[domain.Region], error) {
	var result domain.PageResult[domain.Region]

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			db = db.Where("LOWER(name) LIKE ?", containsPattern(filter.Search))
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entity.Region{}).Scopes(scope).Count(&result.Count).Error; err != nil {
		return result, translateError(err)
	}

	var rows []entity.Region
	query := orderBy(r.db.WithContext(ctx).Scopes(scope), "regions", filter.Ordering, regionOrdering, []string{"nombre"})
	if err := paginate(query, filter.Page).Find(&rows).Error; err != nil {
		return result, translateError(err)
	}
	result.Results = mapSlice(rows, toDomainRegion)
	return result, nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id uint) (*domain.Region, error) {
	var row entity.Region
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	region := toDomainRegion(row)
	return &region, nil
}

func (r *RegionRepository) Create(ctx context.Context, in domain.RegionInput) (*domain.Region, error) {
	row := entity.Region{Name: strings.TrimSpace(in.Name)}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	region := toDomainRegion(row)
	return &region, nil
}

func (r *RegionRepository) Update(ctx context.Context, id uint, in domain.RegionInput) (*domain.Region, error) {
	var row entity.Region
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	row.Name = strings.TrimSpace(in.Name)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, translateError(err)
	}
	region := toDomainRegion(row)
	return &region, nil
}

// Delete fails with domain.ErrIntegrity while a measure still references the region.
func (r *RegionRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.Region{}, "id = ?", id).Error)
}

func (r *RegionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Region{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *RegionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Region{}).Count(&count).Error
	return count, translateError(err)
}
