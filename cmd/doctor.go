package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/capture"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check capture requirements and try every capture strategy",
	Long: `Check that the helper tools the capture strategies rely on are available,
then run each strategy of the platform chain once and report what it read.

Missing tools are reported as warnings; the picker still runs and falls back
to the next strategy, ending with black.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer e.cleanup()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "platform: %s (setting %q)\n", e.goos, e.cfg.Platform)
		if e.cfg.ConfigFile != "" {
			fmt.Fprintf(out, "config:   %s\n", e.cfg.ConfigFile)
		}

		if e.tel.Enabled() {
			fmt.Fprintf(out, "otel:     exporting to %s\n", e.cfg.OTELEndpoint)
		} else {
			fmt.Fprintln(out, "otel:     off")
		}

		if err := capture.CheckDisplay(e.goos, os.Getenv); err != nil {
			fmt.Fprintf(out, "display:  %v\n", err)
		} else {
			fmt.Fprintln(out, "display:  ok")
		}

		warnings := capture.CheckRequirements(ctx, e.goos, e.runner)
		if len(warnings) == 0 {
			fmt.Fprintln(out, "tools:    ok")
		}
		for _, w := range warnings {
			fmt.Fprintf(out, "warning:  %s\n", w)
		}

		fmt.Fprintln(out)
		chain := e.chain()
		for _, s := range chain.Members() {
			start := time.Now()
			sample, err := capture.Attempt(ctx, s)
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				fmt.Fprintf(out, "  %-12s FAIL  %v (%s)\n", s.Name(), err, elapsed)
				continue
			}
			fmt.Fprintf(out, "  %-12s ok    %s %s (%s)\n", s.Name(), sample.Hex(), sample, elapsed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
