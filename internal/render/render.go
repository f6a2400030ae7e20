package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkgwatch/pkgwatch/internal/scan"
	"github.com/pkgwatch/pkgwatch/pkg/scoring"
)

// SchemaVersion identifies the score report wire format.
const SchemaVersion = "v1"

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", s)
	}
}

// ScoreReport bundles everything one evaluation of a package produced.
type ScoreReport struct {
	SchemaVersion string               `json:"schema_version"`
	Package       string               `json:"package,omitempty"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Health        scoring.HealthResult `json:"health"`
	Abandonment   scoring.RiskResult   `json:"abandonment_risk"`
	Trend         *scoring.TrendResult `json:"risk_trend,omitempty"`
}

// Renderer writes reports in one output format.
type Renderer interface {
	Score(w io.Writer, rep *ScoreReport) error
	Scan(w io.Writer, rep *scan.Report) error
	Trend(w io.Writer, tr scoring.TrendResult) error
}

// New returns the renderer for the given format.
func New(f Format) Renderer {
	switch f {
	case FormatJSON:
		return &jsonRenderer{}
	default:
		return &tableRenderer{}
	}
}

// Display order for the component tables. Maps carry the values; these fix
// the rows.
var (
	healthComponents = []string{
		scoring.ComponentMaintainer,
		scoring.ComponentUserCentric,
		scoring.ComponentEvolution,
		scoring.ComponentCommunity,
		scoring.ComponentSecurity,
	}
	riskComponents = []string{
		scoring.RiskInactivity,
		scoring.RiskBusFactor,
		scoring.RiskAdoption,
		scoring.RiskRelease,
	}
)

type jsonRenderer struct{}

func (r *jsonRenderer) Score(w io.Writer, rep *ScoreReport) error {
	return encodeJSON(w, rep)
}

func (r *jsonRenderer) Scan(w io.Writer, rep *scan.Report) error {
	return encodeJSON(w, rep)
}

func (r *jsonRenderer) Trend(w io.Writer, tr scoring.TrendResult) error {
	return encodeJSON(w, tr)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type tableRenderer struct{}

func (r *tableRenderer) Score(w io.Writer, rep *ScoreReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if rep.Package != "" {
		fmt.Fprintf(tw, "Package:\t%s\n", rep.Package)
	}
	fmt.Fprintf(tw, "Health score:\t%.1f\t%s\n", rep.Health.HealthScore, rep.Health.RiskLevel)
	fmt.Fprintf(tw, "Confidence:\t%.1f\t%s\n", rep.Health.Confidence.Score, rep.Health.Confidence.Level)
	if rep.Health.Confidence.Reason != "" {
		fmt.Fprintf(tw, "Note:\t%s\n", rep.Health.Confidence.Reason)
	}
	fmt.Fprintf(tw, "Abandonment:\t%.1f%%\twithin %d months\n",
		rep.Abandonment.Probability, rep.Abandonment.TimeHorizonMonths)
	if rep.Trend != nil {
		fmt.Fprintf(tw, "Risk trend:\t%s\tchange %+.1f, slope %+.2f\n",
			rep.Trend.Trend, rep.Trend.Change, rep.Trend.Slope)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "COMPONENT\tSCORE\tRISK\n")
	for _, key := range healthComponents {
		fmt.Fprintf(tw, "%s\t%.1f\t\n", key, rep.Health.Components[key])
	}
	for _, key := range riskComponents {
		fmt.Fprintf(tw, "%s\t\t%.1f\n", key, rep.Abandonment.Components[key])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Abandonment.RiskFactors) > 0 {
		fmt.Fprintf(w, "\nRisk factors:\n")
		for _, f := range rep.Abandonment.RiskFactors {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	return nil
}

func (r *tableRenderer) Scan(w io.Writer, rep *scan.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "PACKAGE\tHEALTH\tRISK\tABANDONMENT\tFLAGS\n")
	for _, p := range rep.Packages {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%.1f%%\t%s\n",
			p.Package, p.HealthScore, p.RiskLevel, p.Abandonment.Probability, packageFlags(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.NotFound) > 0 {
		fmt.Fprintf(w, "\nNo signals for:\n")
		for _, name := range rep.NotFound {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	fmt.Fprintf(w, "\n%d scanned: %d critical, %d high, %d medium, %d low",
		rep.Total, rep.Critical, rep.High, rep.Medium, rep.Low)
	if len(rep.Packages) > 0 {
		fmt.Fprintf(w, "; mean health %.1f (min %.1f)",
			rep.Summary.MeanHealth, rep.Summary.MinHealth)
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func (r *tableRenderer) Trend(w io.Writer, tr scoring.TrendResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Trend:\t%s\n", tr.Trend)
	fmt.Fprintf(tw, "Change:\t%+.1f per observation\n", tr.Change)
	fmt.Fprintf(tw, "Slope:\t%+.2f\n", tr.Slope)
	return tw.Flush()
}

// packageFlags renders the lifecycle markers of a scanned package.
func packageFlags(p scan.PackageResult) string {
	switch {
	case p.Archived && p.IsDeprecated:
		return "archived, deprecated"
	case p.Archived:
		return "archived"
	case p.IsDeprecated:
		return "deprecated"
	default:
		return ""
	}
}
