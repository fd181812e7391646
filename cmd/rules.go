package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/trxlint/analyzer"
	"github.com/viant/trxlint/analyzer/shape"
	"github.com/viant/trxlint/config"
)

// newRulesCmd creates the `rules` command listing the rule, its messages and presets
func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Lists rule messages and presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (fixable)\n", analyzer.RuleName)
			for _, s := range shape.Shapes {
				fmt.Fprintf(out, "  %-24s %s()\n", analyzer.MessageID(s), s.Method())
			}
			fmt.Fprintln(out, "presets:")
			for _, name := range config.Presets() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
