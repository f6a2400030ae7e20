package render

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/pkgwatch/pkgwatch/internal/scan"
)

// Gauge names in the Prometheus textfile output.
const (
	metricHealthScore     = "pkgwatch_health_score"
	metricHealthComponent = "pkgwatch_health_component"
	metricConfidence      = "pkgwatch_confidence_score"
	metricAbandonment     = "pkgwatch_abandonment_probability"
	metricRiskComponent   = "pkgwatch_abandonment_component"
)

// Help strings shared by the score and scan exporters.
const (
	helpHealthScore     = "Composite package health score (0-100)."
	helpHealthComponent = "Health sub-score per component (0-100)."
	helpConfidence      = "Confidence in the health score (0-100)."
	helpAbandonment     = "Probability of abandonment within the evaluated horizon (0-100)."
	helpRiskComponent   = "Abandonment sub-risk per component (0-100)."
)

// PromScore encodes one score report as Prometheus text format, suitable
// for the node-exporter textfile collector.
func PromScore(w io.Writer, rep *ScoreReport) error {
	pkg := rep.Package
	if pkg == "" {
		pkg = "unknown"
	}

	healthComps := make([]*dto.Metric, 0, len(healthComponents))
	for _, key := range healthComponents {
		healthComps = append(healthComps, gauge(rep.Health.Components[key],
			labelPair("component", key), labelPair("package", pkg)))
	}
	riskComps := make([]*dto.Metric, 0, len(riskComponents))
	for _, key := range riskComponents {
		riskComps = append(riskComps, gauge(rep.Abandonment.Components[key],
			labelPair("component", key), labelPair("package", pkg)))
	}

	return encodeFamilies(w, []*dto.MetricFamily{
		gaugeFamily(metricHealthScore, helpHealthScore,
			gauge(rep.Health.HealthScore, labelPair("package", pkg))),
		gaugeFamily(metricHealthComponent, helpHealthComponent, healthComps...),
		gaugeFamily(metricConfidence, helpConfidence,
			gauge(rep.Health.Confidence.Score, labelPair("package", pkg))),
		gaugeFamily(metricAbandonment, helpAbandonment,
			gauge(rep.Abandonment.Probability, labelPair("package", pkg))),
		gaugeFamily(metricRiskComponent, helpRiskComponent, riskComps...),
	})
}

// PromScan encodes a scan report as Prometheus text format, one series per
// scored package. Health components and confidence are per-evaluation
// detail the scan report does not carry, so only the composite gauges are
// emitted.
func PromScan(w io.Writer, rep *scan.Report) error {
	health := make([]*dto.Metric, 0, len(rep.Packages))
	abandon := make([]*dto.Metric, 0, len(rep.Packages))
	riskComps := make([]*dto.Metric, 0, len(rep.Packages)*len(riskComponents))

	for _, p := range rep.Packages {
		health = append(health, gauge(p.HealthScore, labelPair("package", p.Package)))
		abandon = append(abandon, gauge(p.Abandonment.Probability, labelPair("package", p.Package)))
		for _, key := range riskComponents {
			riskComps = append(riskComps, gauge(p.Abandonment.Components[key],
				labelPair("component", key), labelPair("package", p.Package)))
		}
	}

	return encodeFamilies(w, []*dto.MetricFamily{
		gaugeFamily(metricHealthScore, helpHealthScore, health...),
		gaugeFamily(metricAbandonment, helpAbandonment, abandon...),
		gaugeFamily(metricRiskComponent, helpRiskComponent, riskComps...),
	})
}

// encodeFamilies writes the families in text exposition format, skipping
// empty ones.
func encodeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func gaugeFamily(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   strPtr(name),
		Help:   strPtr(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

func gauge(value float64, labels ...*dto.LabelPair) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: floatPtr(value)},
	}
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: strPtr(name), Value: strPtr(value)}
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
