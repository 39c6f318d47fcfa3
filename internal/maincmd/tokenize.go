package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/pebblescript/pebble/lang/lexer"
	"github.com/pebblescript/pebble/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles prints every token of each file in order, one per line.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", file, err))
		}

		lex := lexer.New(string(src))
		for {
			tok := lex.Next()
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", tok.Pos, tok.String())
			if tok.Kind == token.EOF {
				break
			}
		}
		if errs := lex.Errors(); len(errs) > 0 {
			return printError(stdio, errs[0])
		}
	}
	return nil
}
