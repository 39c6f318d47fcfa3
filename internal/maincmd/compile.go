package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/pebblescript/pebble/lang/compiler"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(stdio, args...)
}

// CompileFiles compiles each file and prints its disassembled bytecode.
func CompileFiles(stdio mainer.Stdio, files ...string) error {
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", file, err))
		}

		prog, err := compiler.New(string(src)).Compile()
		if err != nil {
			return printError(stdio, err)
		}
		fmt.Fprintln(stdio.Stdout, ";", file)
		fmt.Fprint(stdio.Stdout, compiler.Dasm(prog))
	}
	return nil
}
