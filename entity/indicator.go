package entity

import "gorm.io/datatypes"

type Indicator struct {
	ID                uint           `gorm:"primaryKey"`
	MeasureID         uint           `gorm:"not null;index"`
	Measure           *Measure       `gorm:"foreignKey:MeasureID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	RecordedOn        datatypes.Date `gorm:"column:recorded_on;not null;index"`
	ReusedVolumeM3D   *float64       `gorm:"column:reused_volume_m3d;type:decimal(10,2)"`
	LossPct           *float64       `gorm:"type:decimal(5,2)"`
	GroundwaterLevelM *float64       `gorm:"type:decimal(5,2)"`
	EcologicalFlowPct *float64       `gorm:"type:decimal(5,2)"`
}

func (Indicator) TableName() string {
	return "indicators"
}
