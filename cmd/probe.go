package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/engine"
)

func addProbe(topLevel *cobra.Command, o *rootOptions) {
	timeout := engine.ProbeTimeout

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe every configured target once and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCfg := config.LoadAppConfigOrEmpty(env.configFile, discardLogger())
			if len(appCfg.Targets) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No targets in %s\n", env.configFile)
				return nil
			}
			ctx, cancel := probeContext(cmd.Context(), timeout)
			defer cancel()
			prober := &engine.TCPProber{Timeout: timeout}
			results, err := engine.ProbeAll(ctx, prober, appCfg.Targets)
			if err != nil {
				return fmt.Errorf("probe: %w", err)
			}
			return printProbe(cmd.OutOrStdout(), appCfg.Targets, results)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "connect timeout per target")

	topLevel.AddCommand(cmd)
}

func printProbe(w io.Writer, targets []config.Target, results []engine.ProbeResult) error {
	up := color.New(color.FgGreen).SprintFunc()
	down := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("SERVER"), bold("ADDRESS"), bold("STATUS"), bold("PING"))
	for i, t := range targets {
		r := results[i]
		if r.Online {
			tbl.AddRow(t.Name, t.Address, up("up"), fmt.Sprintf("%dms", r.Latency.Milliseconds()))
		} else {
			tbl.AddRow(t.Name, t.Address, down("down"), "---")
		}
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

// probeContext bounds a whole probe run to twice the per-target timeout.
func probeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout*2)
}
