package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ember/compiler"
	"ember/interner"
)

type disasmCmd struct {
	lineNumbers bool
}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "compile a source file and print its disassembly" }
func (*disasmCmd) Usage() string {
	return "disasm <path>:\n  Compile a source file and print its bytecode disassembly without running it.\n"
}

func (cmd *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.lineNumbers, "line-numbers", true, "include source line numbers in the disassembly")
}

func (cmd *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	chunk, compileErrs := compiler.Compile(string(source), interner.New())
	if len(compileErrs) > 0 {
		for _, e := range compileErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return exitCompileError
	}

	fmt.Print(chunk.Disassemble(args[0], cmd.lineNumbers))
	return subcommands.ExitSuccess
}
