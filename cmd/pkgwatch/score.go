package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgwatch/pkgwatch/internal/config"
	"github.com/pkgwatch/pkgwatch/internal/render"
	"github.com/pkgwatch/pkgwatch/pkg/scoring"
	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

func newScoreCmd() *cobra.Command {
	var (
		months      int
		historyPath string
		format      string
		promPath    string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "score <snapshot.json>",
		Short: "Score one package snapshot",
		Long: `Score one package snapshot: composite health with per-component detail,
confidence in that evaluation, and the probability of abandonment over a
time horizon. Pass "-" to read the snapshot from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapPath := args[0]
			if watch && snapPath == "-" {
				return fmt.Errorf("cannot watch stdin, pass a snapshot file")
			}

			cfg, f, err := loadSetup(format)
			if err != nil {
				return err
			}
			eng, err := cfg.Engine()
			if err != nil {
				return err
			}
			renderer := render.New(f)

			var mu sync.Mutex // guards eng across the watch callbacks
			evaluate := func() error {
				mu.Lock()
				e := eng
				mu.Unlock()

				rep, err := buildScoreReport(e, snapPath, months, historyPath)
				if err != nil {
					return err
				}
				if err := renderer.Score(os.Stdout, rep); err != nil {
					return err
				}
				if promPath != "" {
					return writeProm(promPath, func(w io.Writer) error {
						return render.PromScore(w, rep)
					})
				}
				return nil
			}

			if err := evaluate(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx := cmd.Context()
			rescore := func() {
				if err := evaluate(); err != nil {
					slog.Error("re-score failed, keeping last result", "err", err)
				}
			}
			if cfgPath != "" {
				go func() {
					err := config.Watch(ctx, cfgPath, func(updated *config.Config) {
						e, err := updated.Engine()
						if err != nil {
							slog.Error("updated config rejected", "err", err)
							return
						}
						mu.Lock()
						eng = e
						mu.Unlock()
						rescore()
					})
					if err != nil {
						slog.Error("config watcher stopped", "err", err)
					}
				}()
			}
			return config.WatchFile(ctx, snapPath, rescore)
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "abandonment horizon in months (0 = configured default)")
	cmd.Flags().StringVar(&historyPath, "history", "", "risk history JSON array, enables trend classification")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table | json (default from config)")
	cmd.Flags().StringVar(&promPath, "prom", "", "write Prometheus textfile metrics to this path")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-score when the snapshot or config file changes")

	return cmd
}

func buildScoreReport(eng *scoring.Engine, snapPath string, months int, historyPath string) (*render.ScoreReport, error) {
	data, err := readInput(snapPath)
	if err != nil {
		return nil, err
	}
	snap, err := signal.Parse(data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rep := &render.ScoreReport{
		SchemaVersion: render.SchemaVersion,
		Package:       packageName(snapPath),
		GeneratedAt:   now,
		Health:        eng.HealthScore(snap, now),
		Abandonment:   eng.AbandonmentRisk(snap, now, months),
	}

	if historyPath != "" {
		history, err := loadHistory(historyPath)
		if err != nil {
			return nil, err
		}
		tr := eng.RiskTrend(history)
		rep.Trend = &tr
	}
	return rep, nil
}

// packageName derives a display name from the snapshot path. Snapshots do
// not carry the package name themselves; the file is conventionally named
// after it.
func packageName(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
