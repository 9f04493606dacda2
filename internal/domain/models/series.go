package models

import "time"

// MarketPoint is one day of synthetic market data.
type MarketPoint struct {
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"volume"`
	Volatility float64   `json:"volatility"`
}

// MarketSeries is the reproducible fixture dataset: an ordered, gap-free
// daily series fully determined by (Seed, Length, Start).
type MarketSeries struct {
	Seed   int64         `json:"seed"`
	Start  time.Time     `json:"start"`
	Points []MarketPoint `json:"points"`
}

// Length returns the number of points in the series.
func (s *MarketSeries) Length() int {
	return len(s.Points)
}

// End returns the date of the last point, or the zero time for an empty series.
func (s *MarketSeries) End() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}
