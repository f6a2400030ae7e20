package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgwatch/pkgwatch/internal/render"
)

func newTrendCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "trend <history.json>",
		Short: "Classify the direction of a risk history",
		Long: `Classify a series of abandonment-risk observations (a JSON array of
numbers, oldest first) as INCREASING, DECREASING, or STABLE. Pass "-" to
read the history from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, f, err := loadSetup(format)
			if err != nil {
				return err
			}
			eng, err := cfg.Engine()
			if err != nil {
				return err
			}
			history, err := loadHistory(args[0])
			if err != nil {
				return err
			}
			return render.New(f).Trend(os.Stdout, eng.RiskTrend(history))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table | json (default from config)")

	return cmd
}

// loadHistory reads a JSON array of risk observations, oldest first.
func loadHistory(path string) ([]float64, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return history, nil
}
