package domain

// Page selects a 1-based page; a zero Size disables paging.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

type PageResult[T any] struct {
	Count   int64
	Results []T
}

type RegionFilter struct {
	Search   string
	Ordering []string
	Page     Page
}

type WaterSourceFilter struct {
	Category          string
	CategoryContains  string
	DescriptionSearch string
	Capacity          *float64
	CapacityGTE       *float64
	CapacityLTE       *float64
	RenewableEnergy   *bool
	Search            string
	Ordering          []string
	Page              Page
}
