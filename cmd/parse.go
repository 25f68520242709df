package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print a program in canonical form",
	Long: `Parse FILE and print each top-level statement in the form the stepper
shows at its prompts, one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := load(args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if len(module.Stmts) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), module.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
