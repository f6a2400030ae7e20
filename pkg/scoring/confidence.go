package scoring

import (
	"fmt"
	"time"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// ConfidenceLevel buckets a confidence score.
type ConfidenceLevel string

// Confidence levels. INSUFFICIENT_DATA is reserved for the young-package
// short-circuit and never produced by the blended calculation.
const (
	ConfidenceInsufficientData ConfidenceLevel = "INSUFFICIENT_DATA"
	ConfidenceLow              ConfidenceLevel = "LOW"
	ConfidenceMedium           ConfidenceLevel = "MEDIUM"
	ConfidenceHigh             ConfidenceLevel = "HIGH"
)

// Confidence bucket thresholds (inclusive lower bounds). Distinct from the
// risk-level thresholds; the two scales are unrelated.
const (
	confidenceHighMin   = 80.0
	confidenceMediumMin = 50.0
)

// minTrustworthyAgeDays is the package age below which no amount of signal
// coverage makes scores trustworthy.
const minTrustworthyAgeDays = 90

// insufficientDataScore is the fixed confidence assigned to packages
// younger than minTrustworthyAgeDays.
const insufficientDataScore = 20.0

// Confidence rates how much the health score should be trusted.
type Confidence struct {
	Score  float64         `json:"score"`
	Level  ConfidenceLevel `json:"level"`
	Reason string          `json:"reason,omitempty"`
}

// Confidence blends data completeness (50%), package age (30%) and signal
// freshness (20%) into a [0,100] rating.
//
// Packages younger than 90 days bypass the blend entirely: whatever the
// signal coverage, there is not enough history to score against, so the
// result is a fixed low score with level INSUFFICIENT_DATA and an
// explanatory reason.
func (e *Engine) Confidence(s *signal.Snapshot, now time.Time) Confidence {
	if s == nil {
		s = &signal.Snapshot{}
	}

	if !s.CreatedAt.IsZero() {
		ageDays := int(now.Sub(s.CreatedAt.Time).Hours() / 24)
		if ageDays < minTrustworthyAgeDays {
			if ageDays < 0 {
				ageDays = 0
			}
			return Confidence{
				Score:  insufficientDataScore,
				Level:  ConfidenceInsufficientData,
				Reason: fmt.Sprintf("Package is only %d days old. Scores may be unreliable.", ageDays),
			}
		}
	}

	score := round1((0.5*completeness(s) +
		0.3*ageScore(s.CreatedAt, now) +
		0.2*freshnessScore(s.LastUpdated, now)) * 100)

	return Confidence{Score: score, Level: confidenceLevelFor(score)}
}

// completeness is the fraction of the required signal set that is present
// and non-zero. A zero value is indistinguishable from a collector that
// never filled the field, so it does not count.
func completeness(s *signal.Snapshot) float64 {
	present := 0
	if s.DaysSinceLastCommit != nil && *s.DaysSinceLastCommit != 0 {
		present++
	}
	if s.WeeklyDownloads != 0 {
		present++
	}
	if s.ActiveContributors90d != nil && *s.ActiveContributors90d != 0 {
		present++
	}
	if !s.LastPublished.IsZero() {
		present++
	}
	return float64(present) / 4
}

// ageScore steps by age band: under 180 days 0.5, under a year 0.7, a year
// or more 1.0. Unknown creation dates sit at 0.5.
func ageScore(created signal.Time, now time.Time) float64 {
	if created.IsZero() {
		return 0.5
	}
	days := now.Sub(created.Time).Hours() / 24
	switch {
	case days < 180:
		return 0.5
	case days < 365:
		return 0.7
	default:
		return 1.0
	}
}

// freshnessScore steps by hours since the signals were last refreshed:
// over a week 0.7, over two days 0.9, otherwise 1.0. Unknown refresh times
// get full credit: staleness has to be demonstrated, not assumed.
func freshnessScore(updated signal.Time, now time.Time) float64 {
	if updated.IsZero() {
		return 1.0
	}
	hours := now.Sub(updated.Time).Hours()
	switch {
	case hours > 168:
		return 0.7
	case hours > 48:
		return 0.9
	default:
		return 1.0
	}
}

// confidenceLevelFor maps a confidence score to its level.
func confidenceLevelFor(score float64) ConfidenceLevel {
	switch {
	case score >= confidenceHighMin:
		return ConfidenceHigh
	case score >= confidenceMediumMin:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
