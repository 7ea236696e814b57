package dto

type WaterSourceRequestDTO struct {
	Category        string   `json:"tipo" binding:"required,oneof=REUSO DESALACION RECARGA TELEMETRIA OTRA"`
	CapacityM3D     *float64 `json:"capacidad_m3d" binding:"omitempty,gte=0,lt=100000000"`
	RenewableEnergy bool     `json:"energia_renovable"`
	Description     string   `json:"descripcion"`
}
