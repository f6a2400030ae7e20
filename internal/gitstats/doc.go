// Package gitstats derives maintenance signals from a local git clone.
//
// Collect(path, now, opts) walks the history reachable from HEAD in one
// pass and produces Stats: the commit gap, commit and contributor counts
// inside the activity window (90 days by default), the all-time
// contributor total, and the true bus factor (the fewest contributors
// whose window commits cover half the window's total, the concentration
// measure the scoring engine prefers over a raw head count).
//
// Stats.ApplyTo overlays the result onto a registry-sourced snapshot;
// Stats.Snapshot builds one from repository data alone.
package gitstats
