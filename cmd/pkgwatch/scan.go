package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgwatch/pkgwatch/internal/render"
	"github.com/pkgwatch/pkgwatch/internal/scan"
	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

func newScanCmd() *cobra.Command {
	var (
		signalsPath string
		includeDev  bool
		failOn      string
		format      string
		promPath    string
	)

	cmd := &cobra.Command{
		Use:   "scan <package.json>",
		Short: "Score every dependency of a manifest",
		Long: `Score every dependency named by a package.json against a signals file
(a JSON object mapping package names to snapshots). Dependencies with no
entry in the signals file are reported as not found, not scored as zero.

With --fail-on the command exits non-zero when the report crosses a
bound, for use as a CI gate:

  pkgwatch scan package.json --signals signals.json --fail-on "critical > 0"`,
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

			man, err := scan.LoadManifest(args[0])
			if err != nil {
				return err
			}
			signals, err := signal.LoadSet(signalsPath)
			if err != nil {
				return err
			}

			rep := scan.Run(eng, man.DependencyNames(includeDev), signals, time.Now().UTC())

			if err := render.New(f).Scan(os.Stdout, rep); err != nil {
				return err
			}
			if promPath != "" {
				err := writeProm(promPath, func(w io.Writer) error {
					return render.PromScan(w, rep)
				})
				if err != nil {
					return err
				}
			}

			if failOn != "" {
				fired, value, err := scan.EvalPolicy(failOn, rep)
				if err != nil {
					return err
				}
				if fired {
					return fmt.Errorf("policy %q triggered (value %g)", failOn, value)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&signalsPath, "signals", "", "signals file mapping package names to snapshots (required)")
	cmd.Flags().BoolVar(&includeDev, "include-dev", false, "also scan devDependencies")
	cmd.Flags().StringVar(&failOn, "fail-on", "", `fail when a report field crosses a bound, e.g. "critical > 0"`)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table | json (default from config)")
	cmd.Flags().StringVar(&promPath, "prom", "", "write Prometheus textfile metrics to this path")
	_ = cmd.MarkFlagRequired("signals")

	return cmd
}
