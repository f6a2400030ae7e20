package scan

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pkgwatch/pkgwatch/pkg/scoring"
	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// SchemaVersion identifies the report wire format.
const SchemaVersion = "v1"

// PackageResult is one scored dependency in a report.
type PackageResult struct {
	Package      string             `json:"package"`
	HealthScore  float64            `json:"health_score"`
	RiskLevel    scoring.RiskLevel  `json:"risk_level"`
	Abandonment  scoring.RiskResult `json:"abandonment_risk"`
	IsDeprecated bool               `json:"is_deprecated"`
	Archived     bool               `json:"archived"`
	LastUpdated  signal.Time        `json:"last_updated"`
}

// Summary aggregates the health scores of everything that was scored.
type Summary struct {
	MeanHealth   float64 `json:"mean_health"`
	MinHealth    float64 `json:"min_health"`
	StdDevHealth float64 `json:"stddev_health"`
}

// Report is the result of scanning one dependency set.
type Report struct {
	SchemaVersion string `json:"schema_version"`

	// Total counts every requested dependency, found or not.
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`

	// Packages holds the scored dependencies, worst risk first, ties
	// broken by name.
	Packages []PackageResult `json:"packages"`

	// NotFound lists requested dependencies missing from the signals
	// set, sorted by name.
	NotFound []string `json:"not_found"`

	Summary Summary `json:"summary"`
}

// Run scores every named dependency against the signals set and builds the
// aggregated report. Dependencies without a snapshot end up in NotFound
// instead of failing the scan.
func Run(eng *scoring.Engine, deps []string, signals map[string]*signal.Snapshot, now time.Time) *Report {
	rep := &Report{
		SchemaVersion: SchemaVersion,
		Total:         len(deps),
	}

	var healths []float64
	for _, name := range deps {
		snap, ok := signals[name]
		if !ok {
			rep.NotFound = append(rep.NotFound, name)
			continue
		}

		health := eng.HealthScore(snap, now)
		risk := eng.AbandonmentRisk(snap, now, 0)

		var deprecated, archived bool
		var updated signal.Time
		if snap != nil {
			deprecated = snap.IsDeprecated
			archived = snap.Archived
			updated = snap.LastUpdated
		}

		rep.Packages = append(rep.Packages, PackageResult{
			Package:      name,
			HealthScore:  health.HealthScore,
			RiskLevel:    health.RiskLevel,
			Abandonment:  risk,
			IsDeprecated: deprecated,
			Archived:     archived,
			LastUpdated:  updated,
		})
		healths = append(healths, health.HealthScore)

		switch health.RiskLevel {
		case scoring.RiskCritical:
			rep.Critical++
		case scoring.RiskHigh:
			rep.High++
		case scoring.RiskMedium:
			rep.Medium++
		case scoring.RiskLow:
			rep.Low++
		}
	}

	sort.Slice(rep.Packages, func(i, j int) bool {
		a, b := rep.Packages[i], rep.Packages[j]
		if ra, rb := a.RiskLevel.Rank(), b.RiskLevel.Rank(); ra != rb {
			return ra < rb
		}
		return a.Package < b.Package
	})
	sort.Strings(rep.NotFound)

	rep.Summary = summarize(healths)
	return rep
}

// summarize reduces the scored healths to mean, minimum and standard
// deviation, all rounded to one decimal like the scores themselves.
func summarize(healths []float64) Summary {
	if len(healths) == 0 {
		return Summary{}
	}

	min := healths[0]
	for _, h := range healths[1:] {
		if h < min {
			min = h
		}
	}

	s := Summary{
		MeanHealth: round1(stat.Mean(healths, nil)),
		MinHealth:  min,
	}
	// The sample deviation needs at least two observations.
	if len(healths) > 1 {
		s.StdDevHealth = round1(stat.StdDev(healths, nil))
	}
	return s
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
