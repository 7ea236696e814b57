package entity

import "gorm.io/datatypes"

type Measure struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:150;not null;index"`
	RegionID    uint            `gorm:"not null;index"`
	Region      *Region         `gorm:"foreignKey:RegionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SourceID    *uint           `gorm:"index"`
	Source      *WaterSource    `gorm:"foreignKey:SourceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Objective   string          `gorm:"type:text;not null"`
	ProgressPct float64         `gorm:"type:decimal(5,2);not null;default:0"`
	StartDate   datatypes.Date  `gorm:"not null;index"`
	EndDate     *datatypes.Date
}

func (Measure) TableName() string {
	return "measures"
}
