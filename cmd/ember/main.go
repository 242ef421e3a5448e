// Command ember is the CLI entry point for the language: it compiles
// and runs scripts, drives an interactive REPL, and can print a
// chunk's disassembly for debugging.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	// Bare `ember` with no subcommand at all falls back to the REPL,
	// matching the teacher's original main.go, which never dispatched
	// on a subcommand to begin with.
	if len(os.Args) == 1 {
		os.Exit(int((&replCmd{}).Execute(context.Background(), flag.NewFlagSet("repl", flag.ExitOnError))))
	}

	flag.Parse()
	ctx := context.Background()
	status := subcommands.Execute(ctx)
	// subcommands reports an unknown command or a bad subcommand flag
	// as its own ExitUsageError (2); map it onto the CLI's usage code.
	if status == subcommands.ExitUsageError {
		status = exitUsageError
	}
	os.Exit(int(status))
}
