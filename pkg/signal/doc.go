// Package signal defines the Snapshot of collected package telemetry that
// the scoring engine consumes: commit recency, contributor activity,
// download and dependent counts, release dates, security advisories, and
// repository flags.
//
// A Snapshot is assembled by external collectors and handed to the engine
// as-is; it is immutable once constructed. Optionality is part of the
// contract: fields whose zero value is meaningful (a commit today, zero
// active contributors) are pointers, everything else treats zero as absent.
// All "default when missing" rules live on the accessor methods
// (CommitGapDays, EffectiveContributors, ContributorCount) so callers never
// re-implement fallback chains.
//
// Timestamps use the tolerant Time type: unparsable or mistyped values
// decode to the zero value instead of failing, so a malformed collector
// payload degrades to defaults rather than erroring.
package signal
