package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// EvalPolicy evaluates a gate expression against a report.
//
// Supported expressions (field operator value):
//
//	critical > 0
//	high >= 3
//	not_found > 0
//	mean_health < 60
//	min_health <= 40
//
// Fields: total, critical, high, medium, low, not_found, mean_health,
// min_health. Operators: > >= < <= == !=.
//
// Returns (fires, triggering value). Malformed expressions are an error,
// never a silent pass.
func EvalPolicy(expr string, rep *Report) (bool, float64, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return false, 0, fmt.Errorf("scan: policy %q: want \"field op value\"", expr)
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	v, err := numericField(field, rep)
	if err != nil {
		return false, 0, fmt.Errorf("scan: policy %q: %w", expr, err)
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0, fmt.Errorf("scan: policy %q: value %q is not a number", expr, rhs)
	}
	fires, err := compareFloat(v, op, threshold)
	if err != nil {
		return false, 0, fmt.Errorf("scan: policy %q: %w", expr, err)
	}
	return fires, v, nil
}

// numericField maps a policy field name to its value in the report.
func numericField(field string, rep *Report) (float64, error) {
	switch field {
	case "total":
		return float64(rep.Total), nil
	case "critical":
		return float64(rep.Critical), nil
	case "high":
		return float64(rep.High), nil
	case "medium":
		return float64(rep.Medium), nil
	case "low":
		return float64(rep.Low), nil
	case "not_found":
		return float64(len(rep.NotFound)), nil
	case "mean_health":
		return rep.Summary.MeanHealth, nil
	case "min_health":
		return rep.Summary.MinHealth, nil
	default:
		return 0, fmt.Errorf("unknown field %q", field)
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) (bool, error) {
	switch op {
	case ">":
		return v > threshold, nil
	case ">=":
		return v >= threshold, nil
	case "<":
		return v < threshold, nil
	case "<=":
		return v <= threshold, nil
	case "==":
		return v == threshold, nil
	case "!=":
		return v != threshold, nil
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}
