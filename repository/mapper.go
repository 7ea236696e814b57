package repository

import (
	"time"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/datatypes"
)

func toStorageDate(d domain.Date) datatypes.Date {
	return datatypes.Date(d.Time)
}

func toStorageDatePtr(d *domain.Date) *datatypes.Date {
	if d == nil {
		return nil
	}
	v := toStorageDate(*d)
	return &v
}

func toDomainDate(d datatypes.Date) domain.Date {
	return domain.DateOf(time.Time(d))
}

func toDomainDatePtr(d *datatypes.Date) *domain.Date {
	if d == nil {
		return nil
	}
	v := toDomainDate(*d)
	return &v
}

func toDomainRegion(e entity.Region) domain.Region {
	return domain.Region{ID: e.ID, Name: e.Name}
}

func toDomainWaterSource(e entity.WaterSource) domain.WaterSource {
	return domain.WaterSource{
		ID:              e.ID,
		Category:        domain.SourceCategory(e.Category),
		CapacityM3D:     e.CapacityM3D,
		RenewableEnergy: e.RenewableEnergy,
		Description:     e.Description,
	}
}

func toDomainMeasure(e entity.Measure) domain.Measure {
	m := domain.Measure{
		ID:          e.ID,
		Name:        e.Name,
		RegionID:    e.RegionID,
		SourceID:    e.SourceID,
		Objective:   e.Objective,
		ProgressPct: e.ProgressPct,
		StartDate:   toDomainDate(e.StartDate),
		EndDate:     toDomainDatePtr(e.EndDate),
	}
	if e.Region != nil {
		region := toDomainRegion(*e.Region)
		m.Region = &region
	}
	if e.Source != nil {
		source := toDomainWaterSource(*e.Source)
		m.Source = &source
	}
	return m
}

func toDomainIndicator(e entity.Indicator) domain.Indicator {
	ind := domain.Indicator{
		ID:                e.ID,
		MeasureID:         e.MeasureID,
		Date:              toDomainDate(e.RecordedOn),
		ReusedVolumeM3D:   e.ReusedVolumeM3D,
		LossPct:           e.LossPct,
		GroundwaterLevelM: e.GroundwaterLevelM,
		EcologicalFlowPct: e.EcologicalFlowPct,
	}
	if e.Measure != nil {
		measure := toDomainMeasure(*e.Measure)
		ind.Measure = &measure
	}
	return ind
}

func toDomainUser(e entity.User) domain.User {
	return domain.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
	}
}

func mapSlice[E any, D any](rows []E, fn func(E) D) []D {
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}
