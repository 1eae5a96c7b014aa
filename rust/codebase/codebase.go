// Package codebase tracks a set of Rust source files and their parsed
// macro syntax, serving diagnostics to the LSP server and the check
// command.
package codebase

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/dhamidi/mako/rust/parser"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	AST      parser.Node
	ParseErr error
}

type Diagnostic struct {
	Span    parser.Span
	Kind    parser.ErrorKind
	Message string
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".rs" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := parser.ParseFile(bytes.NewReader(content), parser.WithFile(filepath.Base(path)))
	ast, parseErr := p.Finish()

	c.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		AST:      ast,
		ParseErr: parseErr,
	}
	return nil
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FileInfo, 0, len(c.files))
	for _, file := range c.files {
		out = append(out, file)
	}
	return out
}

// Diagnostics converts a file's parse failure into diagnostics. The parser
// fails fast, so there is at most one.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file := c.files[path]
	if file == nil || file.ParseErr == nil {
		return nil
	}

	if perr, ok := file.ParseErr.(*parser.ParseError); ok {
		return []Diagnostic{{
			Span:    perr.Span,
			Kind:    perr.Kind,
			Message: perr.Message,
		}}
	}
	return []Diagnostic{{Message: file.ParseErr.Error()}}
}
