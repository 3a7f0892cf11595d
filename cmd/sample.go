package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/capture"
	"github.com/timvw/cpick/internal/sampling"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Capture the colour under the pointer once and print it as JSON",
	Long: `Capture the pixel under the mouse pointer once, using the same strategy
chain as the interactive picker, and print the sample with all ten
representations as JSON.

When every capture strategy fails the result is black (#000000); run
"cpick doctor" to see which strategies work on this machine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer e.cleanup()

		if err := capture.CheckDisplay(e.goos, os.Getenv); err != nil {
			return err
		}

		loop := sampling.New(e.chain(), sampling.Options{Logger: e.logger, Metrics: e.metrics()})
		frame, _ := loop.Tick(ctx, time.Now())

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(frame)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
