package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-sequia-service/domain"
)

func TestMeasureRepository_CreateThenGetReturnsSameRecord(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	region := seedRegion(t, repo, "Metropolitana")
	source := seedSource(t, repo, domain.CategoryReuse)

	end := day(2024, time.December, 31)
	created, err := repo.MeasureRepo.Create(ctx, domain.MeasureInput{
		Name:        "Reuso Centro",
		RegionID:    region.ID,
		SourceID:    &source.ID,
		Objective:   "x",
		ProgressPct: 12.5,
		StartDate:   day(2024, time.January, 1),
		EndDate:     &end,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	assert.Equal(t, "Reuso Centro", created.Name)
	assert.Equal(t, region.ID, created.RegionID)
	require.NotNil(t, created.Region)
	assert.Equal(t, "Metropolitana", created.Region.Name)
	require.NotNil(t, created.Source)
	assert.Equal(t, domain.CategoryReuse, created.Source.Category)
	assert.Equal(t, "2024-01-01", created.StartDate.String())
	require.NotNil(t, created.EndDate)
	assert.Equal(t, "2024-12-31", created.EndDate.String())

	fetched, err := repo.MeasureRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestMeasureRepository_DefaultProgressIsZero(t *testing.T) {
	repo := newTestRepository(t)
	region := seedRegion(t, repo, "Valparaíso")

	measure := seedMeasure(t, repo, "Telemetría pozos", region.ID, nil, day(2024, time.March, 1))
	assert.Equal(t, 0.0, measure.ProgressPct)
	assert.Nil(t, measure.SourceID)
	assert.Nil(t, measure.Source)
	assert.Nil(t, measure.EndDate)
}

func TestMeasureRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.MeasureRepo.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMeasureRepository_CreateWithUnknownRegion(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.MeasureRepo.Create(context.Background(), domain.MeasureInput{
		Name:      "Sin región",
		RegionID:  42,
		Objective: "x",
		StartDate: day(2024, time.January, 1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
}

func TestMeasureRepository_UpdateAppliesOnlySetFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	region := seedRegion(t, repo, "Coquimbo")
	source := seedSource(t, repo, domain.CategoryDesalination)
	measure := seedMeasure(t, repo, "Desaladora La Serena", region.ID, &source.ID, day(2023, time.June, 1))

	updated, err := repo.MeasureRepo.Update(ctx, measure.ID, domain.MeasurePatch{
		ProgressPct: domain.Some(55.0),
		SourceID:    domain.Field[*uint]{Set: true, Null: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 55.0, updated.ProgressPct)
	assert.Nil(t, updated.SourceID)
	assert.Nil(t, updated.Source)
	assert.Equal(t, "Desaladora La Serena", updated.Name)
	assert.Equal(t, measure.Objective, updated.Objective)
	assert.Equal(t, measure.StartDate, updated.StartDate)

	end := day(2025, time.January, 15)
	updated, err = repo.MeasureRepo.Update(ctx, measure.ID, domain.MeasurePatch{
		Name:    domain.Some("Desaladora Norte"),
		EndDate: domain.Some(&end),
	})
	require.NoError(t, err)
	assert.Equal(t, "Desaladora Norte", updated.Name)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2025-01-15", updated.EndDate.String())
	assert.Equal(t, 55.0, updated.ProgressPct)
}

func TestMeasureRepository_UpdateEmptyPatchReturnsCurrent(t *testing.T) {
	repo := newTestRepository(t)
	region := seedRegion(t, repo, "Biobío")
	measure := seedMeasure(t, repo, "Recarga acuífero", region.ID, nil, day(2024, time.February, 2))

	updated, err := repo.MeasureRepo.Update(context.Background(), measure.ID, domain.MeasurePatch{})
	require.NoError(t, err)
	assert.Equal(t, measure, updated)
}

func TestMeasureRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.MeasureRepo.Update(context.Background(), 404, domain.MeasurePatch{Name: domain.Some("Cualquiera")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMeasureRepository_DeleteIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	region := seedRegion(t, repo, "Maule")
	measure := seedMeasure(t, repo, "Riego tecnificado", region.ID, nil, day(2024, time.April, 1))

	require.NoError(t, repo.MeasureRepo.Delete(ctx, measure.ID))
	require.NoError(t, repo.MeasureRepo.Delete(ctx, measure.ID))
	require.NoError(t, repo.MeasureRepo.Delete(ctx, 12345))

	_, err := repo.MeasureRepo.GetByID(ctx, measure.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMeasureRepository_DeletingMeasureCascadesToIndicators(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	region := seedRegion(t, repo, "Atacama")
	measure := seedMeasure(t, repo, "Reuso Copiapó", region.ID, nil, day(2024, time.May, 1))

	loss := 18.2
	indicator, err := repo.IndicatorRepo.Create(ctx, domain.IndicatorInput{
		MeasureID: measure.ID,
		Date:      day(2024, time.June, 1),
		LossPct:   &loss,
	})
	require.NoError(t, err)

	require.NoError(t, repo.MeasureRepo.Delete(ctx, measure.ID))

	_, err = repo.IndicatorRepo.GetByID(ctx, indicator.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMeasureRepository_Query(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	north := seedRegion(t, repo, "Antofagasta")
	south := seedRegion(t, repo, "Los Lagos")
	source := seedSource(t, repo, domain.CategoryRecharge)

	seedMeasure(t, repo, "Recarga Loa", north.ID, &source.ID, day(2024, time.January, 10))
	seedMeasure(t, repo, "Desaladora Mejillones", north.ID, nil, day(2024, time.March, 10))
	seedMeasure(t, repo, "Humedales Chiloé", south.ID, nil, day(2023, time.July, 1))

	t.Run("default ordering", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{Ordering: []string{"-fecha_inicio"}})
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Count)
		require.Len(t, result.Results, 3)
		assert.Equal(t, "Desaladora Mejillones", result.Results[0].Name)
		assert.Equal(t, "Humedales Chiloé", result.Results[2].Name)
	})

	t.Run("filter by region", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{RegionID: &north.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Count)
	})

	t.Run("filter by source", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{SourceID: &source.ID})
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Recarga Loa", result.Results[0].Name)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{Search: "DESALADORA"})
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Desaladora Mejillones", result.Results[0].Name)
	})

	t.Run("search matches objective", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{Search: "extracción"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Count)
	})

	t.Run("paging keeps the total count", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{
			Ordering: []string{"nombre"},
			Page:     domain.Page{Number: 2, Size: 2},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Count)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Recarga Loa", result.Results[0].Name)
	})

	t.Run("unknown ordering falls back to id", func(t *testing.T) {
		result, err := repo.MeasureRepo.Query(ctx, domain.MeasureFilter{Ordering: []string{"password"}})
		require.NoError(t, err)
		require.Len(t, result.Results, 3)
		assert.Equal(t, "Recarga Loa", result.Results[0].Name)
	})
}

func TestMeasureRepository_RecentAndAverage(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	region := seedRegion(t, repo, "O'Higgins")

	avg, err := repo.MeasureRepo.AverageProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	for i, pct := range []float64{10, 20, 33.3} {
		m := seedMeasure(t, repo, "Medida "+string(rune('A'+i)), region.ID, nil, day(2024, time.January, 1))
		_, err := repo.MeasureRepo.Update(ctx, m.ID, domain.MeasurePatch{ProgressPct: domain.Some(pct)})
		require.NoError(t, err)
	}

	avg, err = repo.MeasureRepo.AverageProgress(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 21.1, avg, 0.01)

	recent, err := repo.MeasureRepo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Medida C", recent[0].Name)
	assert.Equal(t, "Medida B", recent[1].Name)
}
