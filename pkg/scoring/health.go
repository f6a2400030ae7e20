package scoring

import (
	"time"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// RiskLevel buckets a health score for human consumption.
type RiskLevel string

// Risk levels, ordered from best to worst.
const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Thresholds that map a health score to a risk level. Inclusive lower
// bounds: a score of exactly 80.0 is LOW.
const (
	ThresholdLow    = 80.0
	ThresholdMedium = 60.0
	ThresholdHigh   = 40.0
)

// Keys of the HealthResult components map.
const (
	ComponentMaintainer  = "maintainer_health"
	ComponentUserCentric = "user_centric"
	ComponentEvolution   = "evolution_health"
	ComponentCommunity   = "community_health"
	ComponentSecurity    = "security_health"
)

// HealthResult is one full health evaluation of a package.
type HealthResult struct {
	// HealthScore is the weighted composite in [0,100], one decimal.
	HealthScore float64 `json:"health_score"`

	// RiskLevel buckets HealthScore per the Threshold* constants.
	RiskLevel RiskLevel `json:"risk_level"`

	// Components holds the five sub-scores scaled to [0,100], keyed by the
	// Component* constants.
	Components map[string]float64 `json:"components"`

	// Confidence rates how trustworthy this evaluation is.
	Confidence Confidence `json:"confidence"`
}

// Rank orders risk levels worst-first: CRITICAL 0, HIGH 1, MEDIUM 2, LOW 3.
// Unknown levels sort last.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	default:
		return 4
	}
}

// HealthScore evaluates the snapshot at the given instant.
//
// The five component scores are each clamped to [0,1] before weighting, so
// the composite and every reported component respect their bounds no matter
// how degenerate the input. The maturity bonus is folded into the
// maintainer component: it exists to offset the recency penalty that
// dormant-but-ubiquitous packages would otherwise pay.
func (e *Engine) HealthScore(s *signal.Snapshot, now time.Time) HealthResult {
	if s == nil {
		s = &signal.Snapshot{}
	}

	maintainer := clamp01(maintainerHealth(s) + maturityFactor(s))
	userCentric := clamp01(userCentricHealth(s))
	evolution := clamp01(evolutionHealth(s, now))
	community := clamp01(communityHealth(s))
	security := clamp01(securityHealth(s))

	w := e.cfg.Weights
	score := round1((maintainer*w.Maintainer +
		userCentric*w.UserCentric +
		evolution*w.Evolution +
		community*w.Community +
		security*w.Security) * 100)

	return HealthResult{
		HealthScore: score,
		RiskLevel:   riskLevelFor(score),
		Components: map[string]float64{
			ComponentMaintainer:  round1(maintainer * 100),
			ComponentUserCentric: round1(userCentric * 100),
			ComponentEvolution:   round1(evolution * 100),
			ComponentCommunity:   round1(community * 100),
			ComponentSecurity:    round1(security * 100),
		},
		Confidence: e.Confidence(s, now),
	}
}

// riskLevelFor maps a health score to its risk level.
func riskLevelFor(score float64) RiskLevel {
	switch {
	case score >= ThresholdLow:
		return RiskLow
	case score >= ThresholdMedium:
		return RiskMedium
	case score >= ThresholdHigh:
		return RiskHigh
	default:
		return RiskCritical
	}
}
