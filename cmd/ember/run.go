package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ember/compiler"
	"ember/interner"
	"ember/vm"
)

// exit codes per spec.md §6
const (
	exitUsageError   subcommands.ExitStatus = 64
	exitCompileError subcommands.ExitStatus = 65
	exitRuntimeError subcommands.ExitStatus = 70
	exitIOError      subcommands.ExitStatus = 74
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and execute a source file" }
func (*runCmd) Usage() string {
	return "run <path>:\n  Compile and execute a source file.\n"
}
func (*runCmd) SetFlags(*flag.FlagSet) {}

func (*runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "💥 expected exactly one source file")
		return exitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return exitIOError
	}

	strings := interner.New()
	chunk, compileErrs := compiler.Compile(string(source), strings)
	if len(compileErrs) > 0 {
		for _, e := range compileErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return exitCompileError
	}

	if err := vm.New(strings).Run(chunk); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitRuntimeError
	}
	return subcommands.ExitSuccess
}
