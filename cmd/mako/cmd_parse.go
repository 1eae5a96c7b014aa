package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/mako/format"
	"github.com/dhamidi/mako/rust/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeComments bool
	var includePositions bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .rs file and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if includeComments {
				opts = append(opts, parser.WithComments())
			}
			if maxDepth > 0 {
				opts = append(opts, parser.WithMaxDepth(maxDepth))
			}
			p := parser.ParseFile(bytes.NewReader(data), opts...)
			node, err := p.Finish()
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(os.Stdout)
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "tree":
				if includePositions {
					fmt.Println(parser.NodeStringWithPositions(node))
				} else {
					fmt.Println(parser.NodeString(node))
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includeComments, "comments", true, "collect comments while parsing")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include spans in tree output")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the token tree nesting limit")

	return cmd
}
