package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/testutil"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(testutil.NewSQLiteDB(t))
}

func seedRegion(t *testing.T, repo *Repository, name string) *domain.Region {
	t.Helper()
	region, err := repo.RegionRepo.Create(context.Background(), domain.RegionInput{Name: name})
	require.NoError(t, err)
	return region
}

func seedSource(t *testing.T, repo *Repository, category domain.SourceCategory) *domain.WaterSource {
	t.Helper()
	capacity := 1200.5
	source, err := repo.WaterSourceRepo.Create(context.Background(), domain.WaterSourceInput{
		Category:        category,
		CapacityM3D:     &capacity,
		RenewableEnergy: true,
		Description:     "Planta modular",
	})
	require.NoError(t, err)
	return source
}

func seedMeasure(t *testing.T, repo *Repository, name string, regionID uint, sourceID *uint, start domain.Date) *domain.Measure {
	t.Helper()
	measure, err := repo.MeasureRepo.Create(context.Background(), domain.MeasureInput{
		Name:      name,
		RegionID:  regionID,
		SourceID:  sourceID,
		Objective: "Reducir extracción",
		StartDate: start,
	})
	require.NoError(t, err)
	return measure
}

func day(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(y, m, d)
}
