// Package scan scores a whole dependency manifest in one pass.
//
// LoadManifest reads a package.json (dependencies plus, optionally,
// devDependencies). Run scores each named dependency against a signals
// set and aggregates a Report: per-package results ordered worst risk
// first, counts per risk level, the names that had no signals, and a
// mean/min/stddev summary of the health scores.
//
// EvalPolicy turns a report into a CI gate: expressions like
// "critical > 0" or "mean_health < 60" decide whether a scan should fail
// the build.
package scan
