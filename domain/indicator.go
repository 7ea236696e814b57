package domain

type Indicator struct {
	ID                uint     `json:"id"`
	MeasureID         uint     `json:"medida_id"`
	Measure           *Measure `json:"medida"`
	Date              Date     `json:"fecha"`
	ReusedVolumeM3D   *float64 `json:"volumen_reutilizado_m3d"`
	LossPct           *float64 `json:"perdidas_pct"`
	GroundwaterLevelM *float64 `json:"nivel_freatico_m"`
	EcologicalFlowPct *float64 `json:"caudal_ecologico_pct"`
}

type IndicatorInput struct {
	MeasureID         uint
	Date              Date
	ReusedVolumeM3D   *float64
	LossPct           *float64
	GroundwaterLevelM *float64
	EcologicalFlowPct *float64
}

type IndicatorFilter struct {
	MeasureID *uint
	Search    string
	Ordering  []string
	Page      Page
}
