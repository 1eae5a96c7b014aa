package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/mako/rust/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a .rs file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			lexer := parser.NewLexer(data, filename)
			for {
				tok := lexer.NextToken()
				if tok.Kind == parser.TokenEOF {
					break
				}
				switch tok.Kind {
				case parser.TokenWhitespace:
					continue
				case parser.TokenLineComment, parser.TokenBlockComment:
					if !includeTrivia {
						continue
					}
				}
				fmt.Printf("%s-%s\t%s\t%q\n",
					tok.Span.Start, tok.Span.End, tok.Kind, tok.Literal)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeTrivia, "comments", false, "include comment tokens")

	return cmd
}
