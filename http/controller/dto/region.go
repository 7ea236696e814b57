package dto

type RegionRequestDTO struct {
	Name string `json:"nombre" binding:"required,max=100"`
}
