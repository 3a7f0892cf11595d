package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/cpick/internal/colorspace"
)

var convertCmd = &cobra.Command{
	Use:   "convert <hex>",
	Short: "Print every representation of a colour",
	Long: `Print the ten representations of a colour given as #RRGGBB, RRGGBB or #RGB.

Example:
  cpick convert "#FF8040"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := colorspace.ParseHex(args[0])
		if err != nil {
			return err
		}
		set := colorspace.Convert(s)
		for _, k := range colorspace.Kinds() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", k, set.Get(k))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
