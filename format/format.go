// Package format renders parsed macro syntax for output: JSON trees for
// tooling and verbatim source snippets for round-tripping.
package format

import (
	"github.com/dhamidi/mako/rust/parser"
)

type Encoder interface {
	Encode(node parser.Node) error
}
