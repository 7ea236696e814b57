package repository

import (
	"fmt"

	"github.com/tnqbao/gau-sequia-service/entity"
	"github.com/tnqbao/gau-sequia-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	RegionRepo      *RegionRepository
	WaterSourceRepo *WaterSourceRepository
	MeasureRepo     *MeasureRepository
	IndicatorRepo   *IndicatorRepository
	UserRepo        *UserRepository
	SummaryRepo     *SummaryRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Database.DB)
	return repository
}

func NewRepository(db *gorm.DB) *Repository {
	regions := NewRegionRepository(db)
	sources := NewWaterSourceRepository(db)
	measures := NewMeasureRepository(db)
	indicators := NewIndicatorRepository(db)

	return &Repository{
		RegionRepo:      regions,
		WaterSourceRepo: sources,
		MeasureRepo:     measures,
		IndicatorRepo:   indicators,
		UserRepo:        NewUserRepository(db),
		SummaryRepo:     NewSummaryRepository(regions, sources, measures, indicators),
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(entity.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
