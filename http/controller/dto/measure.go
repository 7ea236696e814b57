package dto

import "github.com/tnqbao/gau-sequia-service/domain"

// MeasureRequestDTO is the body of POST and PUT. The name rule is left to
// the measure service.
type MeasureRequestDTO struct {
	Name        string       `json:"nombre" binding:"max=150"`
	RegionID    uint         `json:"region_id" binding:"required"`
	SourceID    *uint        `json:"fuente_id"`
	Objective   string       `json:"objetivo" binding:"required"`
	ProgressPct *float64     `json:"avance_pct" binding:"omitempty,gte=0,lte=100"`
	StartDate   *domain.Date `json:"fecha_inicio" binding:"required"`
	EndDate     *domain.Date `json:"fecha_fin"`
}

func (r MeasureRequestDTO) ToInput() domain.MeasureInput {
	in := domain.MeasureInput{
		Name:      r.Name,
		RegionID:  r.RegionID,
		SourceID:  r.SourceID,
		Objective: r.Objective,
		EndDate:   r.EndDate,
	}
	if r.ProgressPct != nil {
		in.ProgressPct = *r.ProgressPct
	}
	if r.StartDate != nil {
		in.StartDate = *r.StartDate
	}
	return in
}

// ToPatch sets every field, for full replacement through the partial update path.
func (r MeasureRequestDTO) ToPatch() domain.MeasurePatch {
	in := r.ToInput()
	return domain.MeasurePatch{
		Name:        domain.Some(in.Name),
		RegionID:    domain.Some(in.RegionID),
		SourceID:    domain.Some(in.SourceID),
		Objective:   domain.Some(in.Objective),
		ProgressPct: domain.Some(in.ProgressPct),
		StartDate:   domain.Some(in.StartDate),
		EndDate:     domain.Some(in.EndDate),
	}
}

// MeasureFormDTO is the HTML form; fields stay strings so a bad value can be
// shown back to the user.
type MeasureFormDTO struct {
	Name        string `form:"nombre"`
	Region      string `form:"region"`
	Source      string `form:"fuente"`
	Objective   string `form:"objetivo"`
	ProgressPct string `form:"avance_pct"`
	StartDate   string `form:"fecha_inicio"`
	EndDate     string `form:"fecha_fin"`
}
