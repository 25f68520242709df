package cmd

import (
	"fmt"
	"io"
	"os"

	"rewind/parser"
)

// load reads and parses a program, writing every syntax error to
// errOut.
func load(path string, errOut io.Writer) (*parser.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	module, errs := parser.Parse(path, string(source))
	if reportErrors(errOut, errs) {
		return nil, fmt.Errorf("%s: %d syntax error(s)", path, len(errs))
	}
	return module, nil
}

func reportErrors(w io.Writer, errors []error) bool {
	if len(errors) == 0 {
		return false
	}
	for _, err := range errors {
		fmt.Fprintf(w, "%s\n", err)
	}
	return true
}
