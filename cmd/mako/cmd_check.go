package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/mako/rust/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse .rs files and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectRustFiles(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, file := range files {
				if err := checkFile(file, maxDepth); err != nil {
					failed++
					var parseErr *parser.ParseError
					if errors.As(err, &parseErr) {
						fmt.Fprintln(os.Stderr, parseErr)
					} else {
						fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			fmt.Printf("checked %d files\n", len(files))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the token tree nesting limit")

	return cmd
}

func collectRustFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".rs" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

func checkFile(path string, maxDepth int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts := []parser.Option{parser.WithFile(path)}
	if maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(maxDepth))
	}
	_, err = parser.ParseFile(bytes.NewReader(data), opts...).Finish()
	return err
}
