package scoring

import (
	"math"
	"time"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// Half-lives of the recency decays, in days. A commit gap of 90 days costs
// half the recency credit; a release gap of 180 days costs half the release
// credit.
const (
	commitHalfLifeDays  = 90.0
	releaseHalfLifeDays = 180.0
)

// Ceilings for the log-scale normalizations: log10(value+1) is divided by
// the ceiling and capped at 1.0. Downloads saturate at 10M/week, dependents
// at 10K, stars at 100K, commit volume and contributor counts near 50.
const (
	downloadsCeiling    = 7.0
	dependentsCeiling   = 4.0
	starsCeiling        = 5.0
	activityCeiling     = 1.7
	contributorsCeiling = 1.7
)

// Security sub-score constants. A missing Scorecard score reads as a risk
// signal, not as neutral, hence the low stand-in values.
const (
	securityPolicyCheck = "Security-Policy"
	missingOpenSSFNorm  = 0.3
	missingPolicyBonus  = 0.3
)

// neutralReleaseScore stands in when last_published is absent or
// unparsable.
const neutralReleaseScore = 0.5

// maintainerHealth scores commit recency and maintainer redundancy.
//
//	score = 0.6 * exp(-ln2 * days/90) + 0.4 * sigmoid(contributors - 2)
//
// where contributors follows the bus-factor precedence chain of
// signal.Snapshot.EffectiveContributors.
func maintainerHealth(s *signal.Snapshot) float64 {
	recency := halfLifeDecay(float64(s.CommitGapDays()), commitHalfLifeDays)
	bus := sigmoid(float64(s.EffectiveContributors()) - 2)
	return 0.6*recency + 0.4*bus
}

// userCentricHealth scores adoption from the consumer's point of view.
//
//	score = 0.5 * logNorm(downloads, 7) +
//	        0.3 * logNorm(dependents, 4) +
//	        0.2 * logNorm(stars, 5)
func userCentricHealth(s *signal.Snapshot) float64 {
	return 0.5*logNorm(float64(s.WeeklyDownloads), downloadsCeiling) +
		0.3*logNorm(float64(s.DependentsCount), dependentsCeiling) +
		0.2*logNorm(float64(s.Stars), starsCeiling)
}

// evolutionHealth scores release cadence and recent commit volume.
//
//	score = 0.5 * exp(-ln2 * daysSinceRelease/180) + 0.5 * logNorm(commits, 1.7)
//
// An absent or unparsable release date uses the neutral 0.5 instead of the
// decay term.
func evolutionHealth(s *signal.Snapshot, now time.Time) float64 {
	release := neutralReleaseScore
	if !s.LastPublished.IsZero() {
		release = halfLifeDecay(daysSince(s.LastPublished.Time, now), releaseHalfLifeDays)
	}
	activity := logNorm(float64(s.Commits90d), activityCeiling)
	return 0.5*release + 0.5*activity
}

// communityHealth scores the all-time contributor base. The missing-or-zero
// floor of one contributor keeps the score at log10(2)/1.7 ≈ 0.18 rather
// than a hard zero.
func communityHealth(s *signal.Snapshot) float64 {
	return logNorm(float64(s.ContributorCount()), contributorsCeiling)
}

// securityHealth scores supply-chain posture.
//
//	score = 0.5 * openssf/10 + 0.3 * sigmoid(-(vulnWeight-2)/1.5) + 0.2 * policy/10
//
// vulnWeight counts 3 per CRITICAL, 2 per HIGH and 1 per MEDIUM advisory;
// LOW advisories are ignored. The policy term reads the "Security-Policy"
// Scorecard check.
func securityHealth(s *signal.Snapshot) float64 {
	openssf := missingOpenSSFNorm
	if s.OpenSSFScore != nil {
		openssf = clamp01(*s.OpenSSFScore / 10)
	}

	counts := s.AdvisoryCounts()
	vulnWeight := float64(3*counts[signal.SeverityCritical] +
		2*counts[signal.SeverityHigh] +
		counts[signal.SeverityMedium])
	vuln := sigmoid(-(vulnWeight - 2) / 1.5)

	policy := missingPolicyBonus
	if score, ok := s.CheckScore(securityPolicyCheck); ok {
		policy = clamp01(score / 10)
	}

	return 0.5*openssf + 0.3*vuln + 0.2*policy
}

// halfLifeDecay returns exp(-ln2 * days/halfLife): 1.0 at zero days, 0.5
// after one half-life. Negative day counts clamp to 0.
func halfLifeDecay(days, halfLife float64) float64 {
	if days < 0 {
		days = 0
	}
	return math.Exp(-math.Ln2 * days / halfLife)
}

// logNorm maps a non-negative count onto [0,1] with log10 scaling:
// log10(value+1)/ceiling, capped at 1.0. Negative values clamp to 0.
func logNorm(value, ceiling float64) float64 {
	return math.Min(log10p1(value)/ceiling, 1.0)
}

// log10p1 returns log10(value+1) with negative inputs clamped to 0.
func log10p1(value float64) float64 {
	if value < 0 {
		value = 0
	}
	return math.Log10(value + 1)
}

// sigmoid is the logistic function 1/(1+e^-x), mapping any real input
// smoothly onto (0,1).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// daysSince returns fractional days from t to now, clamped at 0 for
// timestamps in the future.
func daysSince(t, now time.Time) float64 {
	days := now.Sub(t).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// clamp01 restricts v to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round1 rounds to one decimal place, the precision all reported scores
// share.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
