package parser

import "fmt"

type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrExpectedMacroArguments
	ErrUnterminatedTokenTree
	ErrMismatchedDelimiter
	ErrMissingStatementTerminator
	ErrExpectedRuleSeparator
	ErrNestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedToken:            "UnexpectedToken",
	ErrExpectedMacroArguments:     "ExpectedMacroArguments",
	ErrUnterminatedTokenTree:      "UnterminatedTokenTree",
	ErrMismatchedDelimiter:        "MismatchedDelimiter",
	ErrMissingStatementTerminator: "MissingStatementTerminator",
	ErrExpectedRuleSeparator:      "ExpectedRuleSeparator",
	ErrNestingTooDeep:             "NestingTooDeep",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseError is the single error type produced by this package. The parser
// fails fast: the first error encountered is returned with the span of the
// offending token and no partial node.
type ParseError struct {
	Kind    ErrorKind
	Span    Span
	Message string
}

func (e *ParseError) Error() string {
	pos := e.Span.Start
	if pos.File != "" {
		return fmt.Sprintf("%s:%s: %s", pos.File, pos.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s", pos.String(), e.Message)
}

func errorAt(kind ErrorKind, span Span, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}
