package scoring

import (
	"gonum.org/v1/gonum/stat"
)

// Trend is the direction a risk history is moving in.
type Trend string

// Trend classifications.
const (
	TrendStable     Trend = "STABLE"
	TrendIncreasing Trend = "INCREASING"
	TrendDecreasing Trend = "DECREASING"
)

// TrendResult classifies the direction of a package's risk over time.
type TrendResult struct {
	// Trend is STABLE, INCREASING or DECREASING.
	Trend Trend `json:"trend"`

	// Change is the average per-observation movement between the oldest
	// and newest probability, one decimal.
	Change float64 `json:"change"`

	// Slope is the least-squares slope fitted over the whole history. It
	// is informational: classification uses Change only, so a single
	// outlier observation cannot flip the trend.
	Slope float64 `json:"slope"`
}

// RiskTrend classifies a history of abandonment-risk probabilities,
// ordered oldest to newest.
//
// The change is (newest - oldest) / (observations - 1); histories moving
// less than the configured threshold per observation count as STABLE.
// Empty and single-element histories are STABLE with zero change.
func (e *Engine) RiskTrend(history []float64) TrendResult {
	if len(history) < 2 {
		return TrendResult{Trend: TrendStable}
	}

	change := round1((history[len(history)-1] - history[0]) / float64(len(history)-1))

	result := TrendResult{
		Trend:  TrendStable,
		Change: change,
		Slope:  trendSlope(history),
	}
	switch {
	case change > e.cfg.TrendThreshold:
		result.Trend = TrendIncreasing
	case change < -e.cfg.TrendThreshold:
		result.Trend = TrendDecreasing
	}
	return result
}

// trendSlope fits an ordinary least-squares line through (index, value)
// pairs and returns its slope.
func trendSlope(history []float64) float64 {
	xs := make([]float64, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, history, nil, false)
	return slope
}
