package dto

// PageResponseDTO is the paginated list envelope.
type PageResponseDTO[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
