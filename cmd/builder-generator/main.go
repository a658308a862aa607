// Package main provides the CLI entrypoint for builder-generator.
//
// builder-generator derives builder types for Go structs:
//   - Parses Go packages (AST + go/types) to find records
//   - Emits a builder with one chaining setter per field
//   - Emits a Build method that reports the first missing field
//   - Checks that committed builders are up to date
package main

import (
	"errors"
	"io"
	"os"

	"builder-generator/internal/analyze"
)

// Exit statuses.
const (
	exitOK      = 0
	exitFailure = 1
	exitMisuse  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status. A type a builder
// cannot be derived for aborts generation with a *analyze.MisuseError panic;
// it is recovered here and nowhere else.
func run(args []string, stdout, stderr io.Writer) (code int) {
	c := newCLI(stdout, stderr)

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		misuse, ok := r.(*analyze.MisuseError)
		if !ok {
			panic(r)
		}

		c.log().Error("cannot derive builder",
			"type", misuse.Type.String(),
			"field", misuse.Field,
			"reason", misuse.Reason,
			"pos", misuse.Pos.String())

		code = exitMisuse
	}()

	root := c.rootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errStale) {
			c.log().Error(err.Error())
		}

		return exitFailure
	}

	return exitOK
}
