package domain

// Summary is the panel overview: totals, average progress and the latest activity.
type Summary struct {
	TotalMeasures    int64
	TotalIndicators  int64
	TotalSources     int64
	TotalRegions     int64
	AverageProgress  float64
	RecentMeasures   []Measure
	LatestIndicators []Indicator
}
