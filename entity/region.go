package entity

type Region struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (Region) TableName() string {
	return "regions"
}
