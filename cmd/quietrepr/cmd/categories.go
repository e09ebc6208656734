package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/quietrepr/internal/rules"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List omission categories and the effective process-wide setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, engine, err := (&renderFlags{}).setup(cmd)
		if err != nil {
			return err
		}
		baseline := engine.Baseline()
		defaults := rules.Defaults()
		w := cmd.OutOrStdout()
		for _, c := range rules.AllCategories() {
			if _, err := fmt.Fprintf(w, "%-20s default=%-5t effective=%t\n", c, defaults.Omits(c), baseline.Omits(c)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "%-20s %v\n", "except", baseline.Except())
		return err
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
