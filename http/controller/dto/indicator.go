package dto

import "github.com/tnqbao/gau-sequia-service/domain"

type IndicatorRequestDTO struct {
	MeasureID         uint         `json:"medida_id" binding:"required"`
	Date              *domain.Date `json:"fecha" binding:"required"`
	ReusedVolumeM3D   *float64     `json:"volumen_reutilizado_m3d" binding:"omitempty,gte=0,lt=100000000"`
	LossPct           *float64     `json:"perdidas_pct" binding:"omitempty,gte=0,lte=100"`
	GroundwaterLevelM *float64     `json:"nivel_freatico_m" binding:"omitempty,gt=-1000,lt=1000"`
	EcologicalFlowPct *float64     `json:"caudal_ecologico_pct" binding:"omitempty,gte=0,lte=100"`
}

func (r IndicatorRequestDTO) ToInput() domain.IndicatorInput {
	in := domain.IndicatorInput{
		MeasureID:         r.MeasureID,
		ReusedVolumeM3D:   r.ReusedVolumeM3D,
		LossPct:           r.LossPct,
		GroundwaterLevelM: r.GroundwaterLevelM,
		EcologicalFlowPct: r.EcologicalFlowPct,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}
