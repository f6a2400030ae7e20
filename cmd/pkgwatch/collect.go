package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgwatch/pkgwatch/internal/config"
	"github.com/pkgwatch/pkgwatch/internal/gitstats"
	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

func newCollectCmd() *cobra.Command {
	var (
		repoPath   string
		windowDays int
		mergePath  string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect repository signals from a local git clone",
		Long: `Walk the commit history of a local clone and derive the repository-side
snapshot fields: commit gap, activity window counts, contributor totals,
and the bus factor. With --merge the derived fields are overlaid onto an
existing snapshot so registry-sourced fields survive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if windowDays == 0 {
				windowDays = cfg.Collect.WindowDays
			}

			now := time.Now().UTC()
			stats, err := gitstats.Collect(repoPath, now, gitstats.Options{WindowDays: windowDays})
			if err != nil {
				return err
			}

			var snap *signal.Snapshot
			if mergePath != "" {
				snap, err = signal.Load(mergePath)
				if err != nil {
					return err
				}
				stats.ApplyTo(snap, now)
			} else {
				snap = stats.Snapshot(now)
			}

			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			data = append(data, '\n')

			if outPath == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			slog.Info("snapshot written", "path", outPath, "window_days", windowDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "path to the local git repository (required)")
	cmd.Flags().IntVar(&windowDays, "window-days", 0, "activity window in days (0 = configured default)")
	cmd.Flags().StringVar(&mergePath, "merge", "", "existing snapshot to overlay the collected fields onto")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
