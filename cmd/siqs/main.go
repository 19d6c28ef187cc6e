// Command siqs factors a decimal integer N via the self-initializing
// quadratic sieve, falling back to trial division and Pollard's rho for
// anything small enough that the sieve would be overkill.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bfix/siqs/internal/bigint"
	"github.com/bfix/siqs/internal/config"
	"github.com/bfix/siqs/internal/cpuinfo"
	"github.com/bfix/siqs/internal/metrics"
	"github.com/bfix/siqs/internal/siqs"
	"github.com/bfix/siqs/internal/siqslog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		workers    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "siqs N",
		Short: "Factor N with the self-initializing quadratic sieve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := bigint.NewFromString(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("siqs: loading config: %w", err)
			}
			if workers > 0 {
				cfg.Workers = workers
			} else if cfg.Workers == 0 {
				cfg.Workers = cpuinfo.Workers()
			}

			level := siqslog.LevelWarn
			if verbose {
				level = siqslog.LevelInfo
			}
			log := siqslog.New(cmd.ErrOrStderr(), level)

			start := time.Now()
			collector := metrics.NewCollector(start)

			f, cofactor, err := siqs.Factor(context.Background(), n, cfg, log, collector)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			stats := collector.Snapshot(time.Now())

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s * %s\n", n, f, cofactor)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "polynomials: %d, relations: %d, mean/poly: %.2f, stddev/poly: %.2f\n",
					stats.Polynomials, stats.Relations, stats.MeanRelationsPerPoly, stats.StdDevRelationsPerPoly)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "elapsed: %dms\n", elapsed.Milliseconds())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML tunables file")
	cmd.Flags().IntVar(&workers, "workers", 0, "sieve worker count (0 = auto-detect)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print sieve progress to stderr and run statistics to stdout")

	return cmd
}
