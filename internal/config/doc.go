// Package config loads and watches the pkgwatch configuration file.
//
// Top-level types:
//   - Config{Scoring, Collect, Output} — full config tree parsed from YAML
//   - ScoringConfig — component weights, horizon_months, trend_threshold
//   - CollectConfig — window_days for git signal collection
//   - OutputConfig — default output format (table|json)
//
// Load(path) reads the YAML file, applies defaults (the stock scoring
// model, a 90-day collection window, table output), then validates weight
// normalization and enums. An empty path returns the defaults without
// touching the filesystem.
//
// Watch(ctx, path, onChange) uses fsnotify to detect config changes and
// calls onChange with the newly parsed Config, keeping the previous one
// when a reload fails. WatchFile is the underlying single-file watcher;
// both handle the rename→create pattern used by atomic-save editors by
// re-adding the watch after each event.
package config
