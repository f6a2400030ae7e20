package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkgwatch/pkgwatch/internal/config"
	"github.com/pkgwatch/pkgwatch/internal/render"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

// Persistent flags, shared by every subcommand.
var (
	cfgPath  string
	logLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pkgwatch",
		Short:        "Score the health and abandonment risk of open source packages",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level value: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (optional)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newTrendCmd())
	root.AddCommand(newCollectCmd())

	return root
}

// loadSetup loads the config file and resolves the output format. A
// non-empty --format flag wins over the configured default.
func loadSetup(format string) (*config.Config, render.Format, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", err
	}
	if format == "" {
		format = cfg.Output.Format
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, "", err
	}
	return cfg, f, nil
}

// readInput reads the named file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeProm renders fn to path for the node-exporter textfile collector.
// The write goes through a temp file and rename so the collector never
// sees a partial exposition.
func writeProm(path string, fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return os.Rename(tmp, path)
}
