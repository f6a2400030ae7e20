package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// Keys of the RiskResult components map.
const (
	RiskInactivity = "inactivity_risk"
	RiskBusFactor  = "bus_factor_risk"
	RiskAdoption   = "adoption_risk"
	RiskRelease    = "release_risk"
)

// Sub-risk combination weights. They must sum to 1.0.
const (
	riskWeightInactivity = 0.35
	riskWeightBusFactor  = 0.25
	riskWeightAdoption   = 0.25
	riskWeightRelease    = 0.15
)

// overrideProbability is the fixed risk assigned to archived and
// deprecated packages, with the matching factor message.
const (
	overrideProbability = 95.0
	archivedFactor      = "Repository is archived"
	deprecatedFactor    = "Package is deprecated"
)

// Bounds of the adoption sub-risk: even a package nobody downloads tops
// out near 90, and ubiquitous packages keep a 10-point residual.
const (
	adoptionRiskFloor = 10.0
	adoptionRiskCap   = 90.0
)

// neutralReleaseRisk stands in when last_published is unknown, mirroring
// the neutral release score on the health side.
const neutralReleaseRisk = 50.0

// Materiality thresholds above which a sub-risk earns an entry in
// RiskFactors.
const (
	inactivityMateriality = 60.0
	busFactorMateriality  = 60.0
	adoptionMateriality   = 70.0
	releaseMateriality    = 70.0
)

// RiskResult is one abandonment-risk evaluation.
type RiskResult struct {
	// Probability that the package is abandoned within the horizon,
	// in [0,100] with one decimal.
	Probability float64 `json:"probability"`

	// TimeHorizonMonths is the horizon the probability was scaled to.
	TimeHorizonMonths int `json:"time_horizon_months"`

	// RiskFactors lists the material contributors in evaluation order.
	RiskFactors []string `json:"risk_factors"`

	// Components holds the four sub-risks in [0,100], keyed by the
	// Risk* constants. Always fully populated.
	Components map[string]float64 `json:"components"`
}

// AbandonmentRisk estimates the probability that the package is abandoned
// within the given horizon. months values below 1 use the configured
// default.
//
// Archived and deprecated packages are a settled question: they return the
// fixed override probability with a single explanatory factor, skipping the
// weighted model. The sub-risk components are still reported so callers can
// see the underlying signals.
//
// For live packages the four sub-risks combine into a 12-month base which
// is then compounded over the horizon:
//
//	probability = 100 * (1 - (1 - base/100)^(months/12))
//
// so longer horizons strictly increase risk and shorter ones decrease it,
// without steps.
func (e *Engine) AbandonmentRisk(s *signal.Snapshot, now time.Time, months int) RiskResult {
	if s == nil {
		s = &signal.Snapshot{}
	}
	if months < 1 {
		months = e.cfg.HorizonMonths
	}

	inactivity := inactivityRisk(s)
	bus := busFactorRisk(s)
	adoption := adoptionRisk(s)
	release := releaseRisk(s, now)

	components := map[string]float64{
		RiskInactivity: round1(inactivity),
		RiskBusFactor:  round1(bus),
		RiskAdoption:   round1(adoption),
		RiskRelease:    round1(release),
	}

	if s.Archived {
		return RiskResult{
			Probability:       overrideProbability,
			TimeHorizonMonths: months,
			RiskFactors:       []string{archivedFactor},
			Components:        components,
		}
	}
	if s.IsDeprecated {
		return RiskResult{
			Probability:       overrideProbability,
			TimeHorizonMonths: months,
			RiskFactors:       []string{deprecatedFactor},
			Components:        components,
		}
	}

	base := inactivity*riskWeightInactivity +
		bus*riskWeightBusFactor +
		adoption*riskWeightAdoption +
		release*riskWeightRelease

	probability := round1(100 * (1 - math.Pow(1-base/100, float64(months)/12)))

	var factors []string
	if inactivity >= inactivityMateriality {
		factors = append(factors,
			fmt.Sprintf("No recent commits (last activity %d days ago)", s.CommitGapDays()))
	}
	if bus >= busFactorMateriality {
		factors = append(factors, "Few active maintainers")
	}
	if adoption >= adoptionMateriality {
		factors = append(factors, "Very low download adoption")
	}
	if release >= releaseMateriality {
		factors = append(factors, "No recent releases")
	}

	return RiskResult{
		Probability:       probability,
		TimeHorizonMonths: months,
		RiskFactors:       factors,
		Components:        components,
	}
}

// inactivityRisk is the inverse of the maintainer recency decay: 0 for a
// commit today, 50 at one half-life (90 days), approaching 100 as the gap
// grows.
func inactivityRisk(s *signal.Snapshot) float64 {
	return 100 * (1 - halfLifeDecay(float64(s.CommitGapDays()), commitHalfLifeDays))
}

// busFactorRisk grows as the effective contributor pool approaches one
// person: sigmoid-shaped, 50 at two contributors, ~73 at one, negligible
// beyond five.
func busFactorRisk(s *signal.Snapshot) float64 {
	return 100 * sigmoid(2-float64(s.EffectiveContributors()))
}

// adoptionRisk is the continuous inverse of the download log-scale:
//
//	(0.9 - log10(downloads+1)/7) * 100, bounded to [10, 90]
//
// ~90 for near-zero downloads, ~61 at 100/week, ~47 at 1000/week, floored
// at exactly 10 once downloads pass roughly a million a week.
func adoptionRisk(s *signal.Snapshot) float64 {
	risk := (0.9 - log10p1(float64(s.WeeklyDownloads))/downloadsCeiling) * 100
	if risk < adoptionRiskFloor {
		return adoptionRiskFloor
	}
	if risk > adoptionRiskCap {
		return adoptionRiskCap
	}
	return risk
}

// releaseRisk is the inverse of the release recency decay, or the neutral
// midpoint when no release date is known.
func releaseRisk(s *signal.Snapshot, now time.Time) float64 {
	if s.LastPublished.IsZero() {
		return neutralReleaseRisk
	}
	return 100 * (1 - halfLifeDecay(daysSince(s.LastPublished.Time, now), releaseHalfLifeDays))
}
