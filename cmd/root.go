package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rewind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Step through a program one statement at a time, and step back",
	Long: `rewind runs a small imperative program under an interactive stepper.
Before every statement, nested ones included, it stops and asks what to do:

  c    continue
  b    step back, restarting the enclosing statement
  i X  show every value X has held
  e    show the environment
  q    quit`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("rewind %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
