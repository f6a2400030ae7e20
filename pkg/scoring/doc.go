// Package scoring turns a package's signal snapshot into health and risk
// assessments. It is the deterministic core of pkgwatch: every function is
// pure, takes the clock as an explicit argument, performs no I/O, and never
// fails: malformed or missing signals degrade to documented defaults.
//
// An Engine built from a Config exposes four operations:
//
//   - HealthScore: weighted blend of five component scores (maintainer,
//     user-centric, evolution, community, security), each derived with
//     continuous curves (exponential half-life decay, sigmoid, log-scale
//     normalization) so nearby inputs always produce nearby scores. The
//     result maps to a LOW/MEDIUM/HIGH/CRITICAL risk level and embeds a
//     Confidence rating.
//   - Confidence: how trustworthy the health score is, from data
//     completeness, package age, and signal freshness. Packages younger
//     than 90 days short-circuit to INSUFFICIENT_DATA.
//   - AbandonmentRisk: forward-looking probability that the package is
//     abandoned within a time horizon, from four sub-risks plus hard
//     overrides for archived and deprecated packages.
//   - RiskTrend: direction classification over a history of past risk
//     probabilities.
//
// score.go holds the component scorers and the shared math helpers,
// maturity.go the stability bonus for feature-complete packages, and
// config.go the weight set with its validation rules.
//
// The engine holds no state, so a single Engine is safe for any number of
// concurrent callers.
package scoring
