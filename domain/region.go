package domain

type Region struct {
	ID   uint   `json:"id"`
	Name string `json:"nombre"`
}

type RegionInput struct {
	Name string
}
