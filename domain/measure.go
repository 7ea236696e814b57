package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinMeasureNameLength = 3

	MsgMeasureNameTooShort       = "El nombre debe tener al menos 3 caracteres."
	MsgMeasureNameTooShortUpdate = "Nombre demasiado corto."
)

type Measure struct {
	ID          uint         `json:"id"`
	Name        string       `json:"nombre"`
	RegionID    uint         `json:"region_id"`
	Region      *Region      `json:"region"`
	SourceID    *uint        `json:"fuente_id"`
	Source      *WaterSource `json:"fuente"`
	Objective   string       `json:"objetivo"`
	ProgressPct float64      `json:"avance_pct"`
	StartDate   Date         `json:"fecha_inicio"`
	EndDate     *Date        `json:"fecha_fin"`
}

// MeasureInput carries every field of a new Measure.
type MeasureInput struct {
	Name        string
	RegionID    uint
	SourceID    *uint
	Objective   string
	ProgressPct float64
	StartDate   Date
	EndDate     *Date
}

// MeasurePatch lists the fields of a partial update; unset fields are left as stored.
type MeasurePatch struct {
	Name        Field[string]  `json:"nombre"`
	RegionID    Field[uint]    `json:"region_id"`
	SourceID    Field[*uint]   `json:"fuente_id"`
	Objective   Field[string]  `json:"objetivo"`
	ProgressPct Field[float64] `json:"avance_pct"`
	StartDate   Field[Date]    `json:"fecha_inicio"`
	EndDate     Field[*Date]   `json:"fecha_fin"`
}

// NullViolations names the non-nullable fields that were sent as null.
func (p MeasurePatch) NullViolations() []string {
	var fields []string
	if p.Name.Null {
		fields = append(fields, "nombre")
	}
	if p.RegionID.Null {
		fields = append(fields, "region_id")
	}
	if p.Objective.Null {
		fields = append(fields, "objetivo")
	}
	if p.ProgressPct.Null {
		fields = append(fields, "avance_pct")
	}
	if p.StartDate.Null {
		fields = append(fields, "fecha_inicio")
	}
	return fields
}

// ValidateMeasureName applies the minimum length rule to the trimmed name,
// reporting message on failure. Create and update word it differently.
func ValidateMeasureName(name, message string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinMeasureNameLength {
		return NewValidationError("nombre", message)
	}
	return nil
}

// MeasureFilter narrows a listing of measures.
type MeasureFilter struct {
	RegionID *uint
	SourceID *uint
	Search   string
	Ordering []string
	Page     Page
}
