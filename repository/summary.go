package repository

import (
	"context"
	"math"

	"github.com/tnqbao/gau-sequia-service/domain"
)

const (
	recentMeasuresLimit   = 5
	latestIndicatorsLimit = 8
)

// SummaryRepository assembles the panel overview from the entity repositories.
type SummaryRepository struct {
	regions    *RegionRepository
	sources    *WaterSourceRepository
	measures   *MeasureRepository
	indicators *IndicatorRepository
}

func NewSummaryRepository(regions *RegionRepository, sources *WaterSourceRepository, measures *MeasureRepository, indicators *IndicatorRepository) *SummaryRepository {
	return &SummaryRepository{
		regions:    regions,
		sources:    sources,
		measures:   measures,
		indicators: indicators,
	}
}

func (r *SummaryRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	var (
		summary domain.Summary
		err     error
	)

	if summary.TotalMeasures, err = r.measures.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalIndicators, err = r.indicators.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalSources, err = r.sources.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalRegions, err = r.regions.Count(ctx); err != nil {
		return nil, err
	}

	avg, err := r.measures.AverageProgress(ctx)
	if err != nil {
		return nil, err
	}
	summary.AverageProgress = math.Round(avg*10) / 10

	if summary.RecentMeasures, err = r.measures.Recent(ctx, recentMeasuresLimit); err != nil {
		return nil, err
	}
	if summary.LatestIndicators, err = r.indicators.Latest(ctx, latestIndicatorsLimit); err != nil {
		return nil, err
	}
	return &summary, nil
}
