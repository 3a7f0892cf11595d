package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/journal"
)

const journalLimit = 20

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recently committed colours",
	Long: `List the most recent colours committed in the picker, newest first.

Every commit is appended to a SQLite journal (journal_file in the config,
"off" to disable), so colours survive restarts even after they have left the
50-entry history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer e.cleanup()

		if !e.cfg.JournalEnabled() {
			return errors.New("journal is disabled (journal_file: off)")
		}
		j, err := journal.Open(e.cfg.JournalFile)
		if err != nil {
			return err
		}
		defer j.Close()

		recs, err := j.Recent(ctx, journalLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No colours committed yet.")
			return nil
		}
		for _, r := range recs {
			fmt.Fprintf(out, "%s  %s  %s\n", r.At.Local().Format("2006-01-02 15:04:05"), r.Hex, r.Value)
		}

		total, err := j.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nshowing %d of %d commits in %s\n", len(recs), total, e.cfg.JournalFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}
