package entity

type WaterSource struct {
	ID              uint     `gorm:"primaryKey"`
	Category        string   `gorm:"size:20;not null;index"`
	CapacityM3D     *float64 `gorm:"column:capacity_m3d;type:decimal(10,2)"`
	RenewableEnergy bool     `gorm:"not null;default:false"`
	Description     string   `gorm:"type:text"`
}

func (WaterSource) TableName() string {
	return "water_sources"
}
