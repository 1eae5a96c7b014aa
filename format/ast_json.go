package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/mako/rust/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	compact, err := parser.MarshalNode(node)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(compact, &decoded); err != nil {
		return nil, err
	}
	return json.MarshalIndent(decoded, "", "  ")
}
