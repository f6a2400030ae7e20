package gitstats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

// collectNow is the fixed collection instant; commits are placed relative
// to it so the window math is deterministic.
var collectNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func initRepo(t *testing.T) (*gogit.Worktree, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return wt, dir
}

// commit writes content to name and commits it with the given author
// identity and timestamp.
func commit(t *testing.T, wt *gogit.Worktree, dir, name, content, email string, when time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("update "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test Author", Email: email, When: when},
	})
	require.NoError(t, err)
}

func daysAgo(n int) time.Time { return collectNow.AddDate(0, 0, -n) }

func TestCollect_NotARepository(t *testing.T) {
	_, err := Collect(t.TempDir(), collectNow, Options{})
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestCollect_EmptyRepository(t *testing.T) {
	_, dir := initRepo(t)
	_, err := Collect(dir, collectNow, Options{})
	assert.ErrorIs(t, err, ErrNoCommits)
}

func TestCollect_MultiAuthorHistory(t *testing.T) {
	wt, dir := initRepo(t)

	// One ancient commit outside the 90-day window.
	commit(t, wt, dir, "a.txt", "v0", "carol@example.com", daysAgo(200))

	// Alice dominates the window with six commits, Bob adds three.
	for i := 0; i < 6; i++ {
		commit(t, wt, dir, "a.txt", "alice"+string(rune('0'+i)), "alice@example.com", daysAgo(60-i))
	}
	for i := 0; i < 3; i++ {
		commit(t, wt, dir, "b.txt", "bob"+string(rune('0'+i)), "bob@example.com", daysAgo(30-i))
	}
	commit(t, wt, dir, "a.txt", "latest", "alice@example.com", daysAgo(2))

	stats, err := Collect(dir, collectNow, Options{WindowDays: 90})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DaysSinceLastCommit)
	assert.Equal(t, 10, stats.CommitsInWindow)
	assert.Equal(t, 2, stats.ActiveContributors)
	assert.Equal(t, 3, stats.TotalContributors)
	// Alice alone covers 7 of 10 window commits.
	assert.Equal(t, 1, stats.TrueBusFactor)
	assert.Equal(t, daysAgo(200), stats.FirstCommit.UTC())
	assert.Equal(t, daysAgo(2), stats.LastCommit.UTC())
}

func TestCollect_BusFactorEvenSplit(t *testing.T) {
	wt, dir := initRepo(t)

	// 3 + 3 + 2 commits: no single author reaches half of 8, two do.
	for i := 0; i < 3; i++ {
		commit(t, wt, dir, "a.txt", "a"+string(rune('0'+i)), "alice@example.com", daysAgo(50-i))
	}
	for i := 0; i < 3; i++ {
		commit(t, wt, dir, "b.txt", "b"+string(rune('0'+i)), "bob@example.com", daysAgo(40-i))
	}
	for i := 0; i < 2; i++ {
		commit(t, wt, dir, "c.txt", "c"+string(rune('0'+i)), "carol@example.com", daysAgo(30-i))
	}

	stats, err := Collect(dir, collectNow, Options{})
	require.NoError(t, err)

	assert.Equal(t, 8, stats.CommitsInWindow)
	assert.Equal(t, 3, stats.ActiveContributors)
	assert.Equal(t, 2, stats.TrueBusFactor)
}

func TestCollect_WindowBoundary(t *testing.T) {
	wt, dir := initRepo(t)

	commit(t, wt, dir, "a.txt", "old", "alice@example.com", daysAgo(91))
	commit(t, wt, dir, "a.txt", "edge", "bob@example.com", daysAgo(90))

	stats, err := Collect(dir, collectNow, Options{WindowDays: 90})
	require.NoError(t, err)

	// A commit exactly at the cutoff is inside the window, one day older
	// is not.
	assert.Equal(t, 1, stats.CommitsInWindow)
	assert.Equal(t, 1, stats.ActiveContributors)
	assert.Equal(t, 2, stats.TotalContributors)
}

func TestCollect_CustomWindow(t *testing.T) {
	wt, dir := initRepo(t)

	commit(t, wt, dir, "a.txt", "v1", "alice@example.com", daysAgo(20))
	commit(t, wt, dir, "a.txt", "v2", "alice@example.com", daysAgo(5))

	stats, err := Collect(dir, collectNow, Options{WindowDays: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.CommitsInWindow)
}

func TestCollect_EmailNormalization(t *testing.T) {
	wt, dir := initRepo(t)

	commit(t, wt, dir, "a.txt", "v1", "Dave@Example.com", daysAgo(10))
	commit(t, wt, dir, "a.txt", "v2", "dave@example.com", daysAgo(5))

	stats, err := Collect(dir, collectNow, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalContributors)
	assert.Equal(t, 1, stats.ActiveContributors)
}

func TestCollect_FreshCommitHasZeroGap(t *testing.T) {
	wt, dir := initRepo(t)

	commit(t, wt, dir, "a.txt", "v1", "alice@example.com", collectNow.Add(-2*time.Hour))

	stats, err := Collect(dir, collectNow, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.DaysSinceLastCommit)
}

func TestStats_ApplyTo(t *testing.T) {
	stats := &Stats{
		DaysSinceLastCommit: 4,
		CommitsInWindow:     17,
		ActiveContributors:  3,
		TotalContributors:   12,
		TrueBusFactor:       2,
		FirstCommit:         daysAgo(800),
		LastCommit:          daysAgo(4),
	}

	// Registry-sourced fields survive the overlay.
	snap := &signal.Snapshot{
		WeeklyDownloads: 123_456,
		CreatedAt:       signal.Time{Time: daysAgo(900)},
	}
	stats.ApplyTo(snap, collectNow)

	require.NotNil(t, snap.DaysSinceLastCommit)
	assert.Equal(t, 4, *snap.DaysSinceLastCommit)
	require.NotNil(t, snap.ActiveContributors90d)
	assert.Equal(t, 3, *snap.ActiveContributors90d)
	assert.Equal(t, 2, snap.TrueBusFactor)
	assert.Equal(t, 17, snap.Commits90d)
	assert.Equal(t, 12, snap.TotalContributors)
	assert.Equal(t, int64(123_456), snap.WeeklyDownloads)
	// The registry creation date wins over the first commit.
	assert.Equal(t, daysAgo(900), snap.CreatedAt.Time)
	assert.Equal(t, collectNow, snap.LastUpdated.Time)
}

func TestStats_Snapshot(t *testing.T) {
	stats := &Stats{
		DaysSinceLastCommit: 1,
		CommitsInWindow:     5,
		ActiveContributors:  2,
		TotalContributors:   2,
		TrueBusFactor:       1,
		FirstCommit:         daysAgo(400),
	}

	snap := stats.Snapshot(collectNow)

	// With no registry data the first commit stands in for the creation
	// date.
	assert.Equal(t, daysAgo(400), snap.CreatedAt.Time)
	require.NotNil(t, snap.DaysSinceLastCommit)
	assert.Equal(t, 1, *snap.DaysSinceLastCommit)
	assert.Equal(t, int64(0), snap.WeeklyDownloads)
}
