package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"ember/compiler"
	"ember/interner"
	"ember/vm"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive REPL" }
func (*replCmd) Usage() string {
	return "repl:\n  Start an interactive REPL. Ctrl-D exits.\n"
}
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start REPL: %v\n", err)
		return exitIOError
	}
	defer rl.Close()

	// Globals persist across lines by reusing one VM (and its shared
	// interner) for the whole session; each line still gets its own
	// compile, so an error on one line never corrupts the next.
	strings := interner.New()
	machine := vm.New(strings)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return exitIOError
		}

		chunk, compileErrs := compiler.Compile(line, strings)
		if len(compileErrs) > 0 {
			for _, e := range compileErrs {
				fmt.Fprintln(os.Stderr, e.Error())
			}
			continue
		}

		if runErr := machine.Run(chunk); runErr != nil {
			fmt.Fprintln(os.Stderr, runErr.Error())
		}
	}
}
