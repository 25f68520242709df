package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rewind/console"
	"rewind/eval"
	"rewind/internal/version"
	"rewind/jsexpr"
)

var engine string
var color bool
var postMortem bool
var logLevel string

var LOGO = `
                _         _  |
 _ _ ___ _ _ _|_|___ ___| | | rewind
| '_| -_| | | | |   | . | | | version: $VERSION
|_| |___|_____|_|_|_|___|_| |
`

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Step through a program",
	Long: `Run FILE under the interactive stepper. Commands are read from the
terminal, or line by line from stdin when it is not one.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := load(args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		evaluator, err := newEvaluator(engine)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
		if err != nil {
			return err
		}

		out := console.NewPrinter(cmd.OutOrStdout(), color)
		in, closeIn, err := openInput(cmd)
		if err != nil {
			return err
		}
		defer closeIn()

		m := eval.NewMachine(eval.Config{
			Evaluator: evaluator,
			Input:     in,
			Output:    out,
			Logger:    &logger,
		})
		st, err := m.Run(module.Root())
		var uncaught *eval.UncaughtError
		switch {
		case err == nil, errors.As(err, &uncaught):
			// the machine has already reported how the run ended
		case errors.Is(err, eval.ErrQuit):
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return nil
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("run %s: %w", args[0], err)
		}
		if postMortem {
			return m.Session().Inspect(st)
		}
		return nil
	},
}

func init() {
	defaultEngine := "native"
	if envEngine := os.Getenv("REWIND_ENGINE"); envEngine != "" {
		defaultEngine = envEngine
	}
	runCmd.Flags().StringVar(&engine, "engine", defaultEngine, "Expression engine to use (native, js)")
	runCmd.Flags().BoolVar(&color, "color", false, "Colour the output")
	runCmd.Flags().BoolVar(&postMortem, "post-mortem", false, "Inspect the final state once the run ends")
	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

func newEvaluator(name string) (eval.Evaluator, error) {
	switch name {
	case "native":
		return eval.Native{}, nil
	case "js":
		return jsexpr.New(), nil
	}
	return nil, fmt.Errorf("unknown engine %q (want native or js)", name)
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// openInput uses readline when attached to a terminal, and plain lines
// otherwise.
func openInput(cmd *cobra.Command) (eval.Input, func(), error) {
	if cmd.InOrStdin() == os.Stdin && console.IsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Replace(LOGO, "$VERSION", version.Short(), 1))
		rl, err := console.NewReadline("")
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { rl.Close() }, nil
	}
	return console.NewLines(cmd.InOrStdin()), func() {}, nil
}
