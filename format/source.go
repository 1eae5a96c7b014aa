package format

import "github.com/dhamidi/mako/rust/parser"

// Snippet returns the exact source text covered by a span. Because every
// node carries byte-accurate offsets, slicing the original input is the
// lossless way to re-emit a recognized node.
func Snippet(src []byte, span parser.Span) string {
	start := span.Start.Offset
	end := span.End.Offset
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}
