package signal

import (
	"encoding/json"
	"fmt"
	"os"
)

// Severity is the advisory severity as reported by vulnerability feeds.
type Severity string

// Severity levels used by vulnerability advisories.
const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Defaults applied by the accessor methods when a field is absent.
const (
	// DefaultCommitGapDays is assumed when days_since_last_commit is
	// missing: a year of silence, not a fresh commit.
	DefaultCommitGapDays = 365

	// DefaultActiveContributors is assumed when active_contributors_90d
	// is missing entirely. An explicit zero stays zero.
	DefaultActiveContributors = 1
)

// Advisory is one published vulnerability against the package.
type Advisory struct {
	Severity Severity `json:"severity"`
}

// Check is one OpenSSF Scorecard check result, score in [0,10].
type Check struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Snapshot is the full set of signals known about one package at collection
// time. Every field is optional; the accessor methods define the fallback
// for each absent value.
//
// Pointer fields distinguish "absent" from a meaningful zero:
// days_since_last_commit 0 means a commit today, active_contributors_90d 0
// means a truly idle quarter, openssf_score 0 means a scored-at-zero repo.
// For the remaining counters zero and absent coincide.
type Snapshot struct {
	DaysSinceLastCommit   *int `json:"days_since_last_commit"`
	ActiveContributors90d *int `json:"active_contributors_90d"`

	// TrueBusFactor is the measured bus factor of the repository; 0 means
	// not computed, in which case ActiveContributors90d stands in.
	TrueBusFactor int `json:"true_bus_factor,omitempty"`

	WeeklyDownloads int64 `json:"weekly_downloads,omitempty"`
	DependentsCount int64 `json:"dependents_count,omitempty"`
	Stars           int64 `json:"stars,omitempty"`

	Commits90d        int `json:"commits_90d,omitempty"`
	TotalContributors int `json:"total_contributors,omitempty"`

	LastPublished Time `json:"last_published"`

	OpenSSFScore  *float64   `json:"openssf_score"`
	OpenSSFChecks []Check    `json:"openssf_checks,omitempty"`
	Advisories    []Advisory `json:"advisories,omitempty"`

	IsDeprecated bool `json:"is_deprecated,omitempty"`
	Archived     bool `json:"archived,omitempty"`

	CreatedAt   Time `json:"created_at"`
	LastUpdated Time `json:"last_updated"`
}

// CommitGapDays returns days since the last commit, defaulting to
// DefaultCommitGapDays when unknown. Negative values clamp to 0.
func (s *Snapshot) CommitGapDays() int {
	if s.DaysSinceLastCommit == nil {
		return DefaultCommitGapDays
	}
	if *s.DaysSinceLastCommit < 0 {
		return 0
	}
	return *s.DaysSinceLastCommit
}

// EffectiveContributors returns the contributor count used for bus-factor
// style calculations: the measured true bus factor when present, otherwise
// the 90-day active contributor count, otherwise DefaultActiveContributors.
func (s *Snapshot) EffectiveContributors() int {
	if s.TrueBusFactor > 0 {
		return s.TrueBusFactor
	}
	if s.ActiveContributors90d != nil {
		if *s.ActiveContributors90d < 0 {
			return 0
		}
		return *s.ActiveContributors90d
	}
	return DefaultActiveContributors
}

// ContributorCount returns the all-time contributor total, treating missing
// or zero as 1 so community scoring has a floor instead of a hard zero.
func (s *Snapshot) ContributorCount() int {
	if s.TotalContributors <= 0 {
		return 1
	}
	return s.TotalContributors
}

// CheckScore looks up an OpenSSF check by name. The second return reports
// whether the check was present.
func (s *Snapshot) CheckScore(name string) (float64, bool) {
	for _, c := range s.OpenSSFChecks {
		if c.Name == name {
			return c.Score, true
		}
	}
	return 0, false
}

// AdvisoryCounts tallies advisories by severity.
func (s *Snapshot) AdvisoryCounts() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, a := range s.Advisories {
		counts[a.Severity]++
	}
	return counts
}

// Parse decodes a single snapshot from JSON. Field-level problems (bad
// timestamps, missing keys) degrade to defaults; only malformed JSON itself
// is an error.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("signal: parse snapshot: %w", err)
	}
	return &s, nil
}

// Load reads and parses the snapshot file at path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signal: read snapshot: %w", err)
	}
	return Parse(data)
}

// LoadSet reads a signals file: a JSON object mapping package names to
// snapshots, as produced by a collection run over many packages.
func LoadSet(path string) (map[string]*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signal: read signals file: %w", err)
	}
	var set map[string]*Snapshot
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("signal: parse signals file: %w", err)
	}
	return set, nil
}
