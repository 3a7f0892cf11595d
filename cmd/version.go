package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time with
// -ldflags "-X github.com/timvw/cpick/cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cpick version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cpick %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
