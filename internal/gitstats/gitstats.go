package gitstats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// Errors returned by Collect.
var (
	ErrNotRepository = errors.New("path is not a git repository")
	ErrNoCommits     = errors.New("repository has no commits")
)

// DefaultWindowDays is the activity window used when Options does not set
// one.
const DefaultWindowDays = 90

// Options configures a collection run.
type Options struct {
	// WindowDays bounds the recent-activity window. Values below 1 fall
	// back to DefaultWindowDays.
	WindowDays int
}

// Stats is what one pass over a repository's history yields.
type Stats struct {
	// DaysSinceLastCommit is the whole-day gap between the newest commit
	// and the collection instant, never negative.
	DaysSinceLastCommit int

	// CommitsInWindow counts commits inside the activity window.
	CommitsInWindow int

	// ActiveContributors counts distinct authors inside the window.
	ActiveContributors int

	// TotalContributors counts distinct authors over all time.
	TotalContributors int

	// TrueBusFactor is the fewest contributors whose window commits reach
	// half the window total, or 0 when the window is empty.
	TrueBusFactor int

	FirstCommit time.Time
	LastCommit  time.Time
}

// Collect walks the full history reachable from HEAD and derives activity
// stats. The window is anchored at now, which also fixes the commit gap.
//
// Authors are identified by e-mail address, compared case-insensitively;
// commits without an e-mail fall back to the author name.
func Collect(repoPath string, now time.Time, opts Options) (*Stats, error) {
	windowDays := opts.WindowDays
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("gitstats: open repository: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("gitstats: read log: %w", err)
	}
	defer iter.Close()

	var (
		stats    Stats
		cutoff   = now.AddDate(0, 0, -windowDays)
		allTime  = make(map[string]struct{})
		inWindow = make(map[string]int)
	)

	err = iter.ForEach(func(c *object.Commit) error {
		author := authorKey(c)
		when := c.Author.When

		allTime[author] = struct{}{}
		if stats.LastCommit.IsZero() || when.After(stats.LastCommit) {
			stats.LastCommit = when
		}
		if stats.FirstCommit.IsZero() || when.Before(stats.FirstCommit) {
			stats.FirstCommit = when
		}
		if !when.Before(cutoff) {
			stats.CommitsInWindow++
			inWindow[author]++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gitstats: walk history: %w", err)
	}
	if len(allTime) == 0 {
		return nil, ErrNoCommits
	}

	stats.TotalContributors = len(allTime)
	stats.ActiveContributors = len(inWindow)
	stats.TrueBusFactor = busFactor(inWindow, stats.CommitsInWindow)

	if gap := int(now.Sub(stats.LastCommit).Hours() / 24); gap > 0 {
		stats.DaysSinceLastCommit = gap
	}

	return &stats, nil
}

// authorKey normalizes a commit author to a contributor identity.
func authorKey(c *object.Commit) string {
	if email := strings.TrimSpace(c.Author.Email); email != "" {
		return strings.ToLower(email)
	}
	return strings.ToLower(strings.TrimSpace(c.Author.Name))
}

// busFactor returns the smallest number of contributors whose combined
// commits cover at least half of total.
func busFactor(counts map[string]int, total int) int {
	if total == 0 {
		return 0
	}

	byVolume := make([]int, 0, len(counts))
	for _, n := range counts {
		byVolume = append(byVolume, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(byVolume)))

	covered := 0
	for i, n := range byVolume {
		covered += n
		if covered*2 >= total {
			return i + 1
		}
	}
	return len(byVolume)
}

// ApplyTo overlays the collected stats onto an existing snapshot, keeping
// whatever registry-sourced fields it already carries. The window counts
// land in the 90-day schema fields whatever window was configured.
func (s *Stats) ApplyTo(snap *signal.Snapshot, collectedAt time.Time) {
	gap := s.DaysSinceLastCommit
	active := s.ActiveContributors
	snap.DaysSinceLastCommit = &gap
	snap.ActiveContributors90d = &active
	snap.TrueBusFactor = s.TrueBusFactor
	snap.Commits90d = s.CommitsInWindow
	snap.TotalContributors = s.TotalContributors
	if snap.CreatedAt.IsZero() && !s.FirstCommit.IsZero() {
		snap.CreatedAt = signal.Time{Time: s.FirstCommit}
	}
	snap.LastUpdated = signal.Time{Time: collectedAt}
}

// Snapshot converts the stats into a fresh snapshot holding only
// repository-derived signals.
func (s *Stats) Snapshot(collectedAt time.Time) *signal.Snapshot {
	snap := &signal.Snapshot{}
	s.ApplyTo(snap, collectedAt)
	return snap
}
