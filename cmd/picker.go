package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/capture"
	"github.com/timvw/cpick/internal/config"
	"github.com/timvw/cpick/internal/history"
	"github.com/timvw/cpick/internal/journal"
	"github.com/timvw/cpick/internal/picker"
	"github.com/timvw/cpick/internal/sampling"
)

func runPicker(cmd *cobra.Command) error {
	ctx := cmd.Context()

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.cleanup()

	if err := capture.CheckDisplay(e.goos, os.Getenv); err != nil {
		return err
	}
	for _, w := range capture.CheckRequirements(ctx, e.goos, e.runner) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	prefs, err := config.LoadPreferences(e.cfg.PreferencesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	chain := e.chain()
	p := &picker.Picker{
		Loop: sampling.New(chain, sampling.Options{
			MinInterval: e.cfg.MinIntervalDuration,
			Logger:      e.logger,
			Metrics:     e.metrics(),
		}),
		History:         history.NewStore(),
		PollInterval:    e.cfg.PollIntervalDuration,
		Theme:           picker.ThemeByName(e.cfg.Theme),
		PreferencesFile: e.cfg.PreferencesFile,
		Preferences:     prefs,
		Logger:          e.logger,
		Metrics:         e.metrics(),
	}

	if e.cfg.JournalEnabled() {
		j, err := journal.Open(e.cfg.JournalFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: journal disabled: %v\n", err)
		} else {
			defer j.Close()
			p.Journal = j
		}
	}

	e.logger.Debug("picker starting", "platform", e.goos, "chain", chain.Name())
	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	return nil
}
