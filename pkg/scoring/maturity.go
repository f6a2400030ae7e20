package scoring

import (
	"math"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// maturityCap bounds the maturity bonus so a dormant package can never be
// lifted to a perfect maintainer score on adoption alone.
const maturityCap = 0.7

// Adoption ramps for the maturity factor. Each ramp maps log10(count+1)
// linearly onto [0,1]: zero credit at or below the floor, full credit at
// floor+width. Downloads earn credit from 100K/week up to ~5M; dependents
// from 100 up to 10K.
const (
	downloadRampFloor  = 5.0
	downloadRampWidth  = 1.7
	dependentRampFloor = 2.0
	dependentRampWidth = 2.0
)

// maturityFactor measures how much low commit volume should be forgiven.
//
// Very popular, feature-complete packages receive few commits because they
// are finished, not because they are abandoned. The factor is
//
//	adoption * activityDeficit, capped at 0.7
//
// where adoption is the stronger of the download and dependent ramps and it
// takes fewer than 10 commits in the last quarter for a deficit to exist at
// all. Unknown packages (below both ramp floors) get no bonus regardless of
// activity.
func maturityFactor(s *signal.Snapshot) float64 {
	downloads := clamp01((log10p1(float64(s.WeeklyDownloads)) - downloadRampFloor) / downloadRampWidth)
	dependents := clamp01((log10p1(float64(s.DependentsCount)) - dependentRampFloor) / dependentRampWidth)
	adoption := math.Max(downloads, dependents)

	commits := float64(s.Commits90d)
	if commits < 0 {
		commits = 0
	}
	if commits > 50 {
		commits = 50
	}
	deficit := math.Max(0, 1-commits/10)

	return math.Min(adoption*deficit, maturityCap)
}
