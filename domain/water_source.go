package domain

type SourceCategory string

const (
	CategoryReuse        SourceCategory = "REUSO"
	CategoryDesalination SourceCategory = "DESALACION"
	CategoryRecharge     SourceCategory = "RECARGA"
	CategoryTelemetry    SourceCategory = "TELEMETRIA"
	CategoryOther        SourceCategory = "OTRA"
)

var sourceCategoryLabels = map[SourceCategory]string{
	CategoryReuse:        "Reúso de aguas tratadas",
	CategoryDesalination: "Desalación modular",
	CategoryRecharge:     "Recarga de acuíferos",
	CategoryTelemetry:    "Telemetría y control de extracciones",
	CategoryOther:        "Otra solución",
}

func SourceCategories() []SourceCategory {
	return []SourceCategory{CategoryReuse, CategoryDesalination, CategoryRecharge, CategoryTelemetry, CategoryOther}
}

func (c SourceCategory) Valid() bool {
	_, ok := sourceCategoryLabels[c]
	return ok
}

func (c SourceCategory) Label() string {
	if label, ok := sourceCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type WaterSource struct {
	ID              uint           `json:"id"`
	Category        SourceCategory `json:"tipo"`
	CapacityM3D     *float64       `json:"capacidad_m3d"`
	RenewableEnergy bool           `json:"energia_renovable"`
	Description     string         `json:"descripcion"`
}

type WaterSourceInput struct {
	Category        SourceCategory
	CapacityM3D     *float64
	RenewableEnergy bool
	Description     string
}
