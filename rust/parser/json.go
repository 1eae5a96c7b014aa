package parser

import "encoding/json"

type jsonNode struct {
	Kind       string      `json:"kind"`
	Span       *jsonSpan   `json:"span,omitempty"`
	Token      string      `json:"token,omitempty"`
	Path       string      `json:"path,omitempty"`
	Name       string      `json:"name,omitempty"`
	ItemName   string      `json:"itemName,omitempty"`
	Delimiter  string      `json:"delimiter,omitempty"`
	Position   string      `json:"position,omitempty"`
	Terminated bool        `json:"terminated,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func spanJSON(span Span) *jsonSpan {
	if span.Start.Line == 0 && span.End.Line == 0 {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column},
		End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
	}
}

// MarshalNode renders any AST node as a JSON tree.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(nodeToJSON(n))
}

func nodeToJSON(n Node) *jsonNode {
	switch node := n.(type) {
	case *SourceFile:
		jn := &jsonNode{Kind: "SourceFile", Span: spanJSON(node.Span)}
		for _, item := range node.Items {
			jn.Children = append(jn.Children, nodeToJSON(item))
		}
		return jn

	case *MacroCall:
		jn := &jsonNode{
			Kind:       "MacroCall",
			Span:       spanJSON(node.Span),
			Path:       node.PathString(),
			Delimiter:  node.Delim.String(),
			Position:   node.Position.String(),
			Terminated: node.Terminator != nil,
		}
		if node.ItemName != nil {
			jn.ItemName = node.ItemName.Literal
		}
		for _, attr := range node.Attrs {
			jn.Children = append(jn.Children, nodeToJSON(attr))
		}
		jn.Children = append(jn.Children, treeToJSON(node.Args))
		return jn

	case *MacroDef:
		jn := &jsonNode{
			Kind:      "MacroDef",
			Span:      spanJSON(node.Span),
			Name:      node.Name.Literal,
			Delimiter: node.Delim.String(),
		}
		for _, attr := range node.Attrs {
			jn.Children = append(jn.Children, nodeToJSON(attr))
		}
		for _, rule := range node.Rules {
			jn.Children = append(jn.Children, nodeToJSON(rule))
		}
		return jn

	case *MacroRule:
		return &jsonNode{
			Kind: "MacroRule",
			Span: spanJSON(node.NodeSpan()),
			Children: []*jsonNode{
				treeToJSON(node.Pattern),
				treeToJSON(node.Template),
			},
		}

	case *Attribute:
		return &jsonNode{
			Kind:     "Attribute",
			Span:     spanJSON(node.NodeSpan()),
			Children: []*jsonNode{treeToJSON(node.Body)},
		}

	case *Function:
		jn := &jsonNode{
			Kind: "Function",
			Span: spanJSON(node.Span),
			Name: node.Name.Literal,
		}
		for _, attr := range node.Attrs {
			jn.Children = append(jn.Children, nodeToJSON(attr))
		}
		jn.Children = append(jn.Children, nodeToJSON(node.Body))
		return jn

	case *Block:
		jn := &jsonNode{Kind: "Block", Span: spanJSON(node.NodeSpan())}
		for _, stmt := range node.Stmts {
			jn.Children = append(jn.Children, nodeToJSON(stmt))
		}
		return jn

	case *Let:
		jn := &jsonNode{Kind: "Let", Span: spanJSON(node.Span)}
		for _, attr := range node.Attrs {
			jn.Children = append(jn.Children, nodeToJSON(attr))
		}
		if node.Init != nil {
			jn.Children = append(jn.Children, nodeToJSON(node.Init))
		}
		return jn

	case *ExprStmt:
		jn := &jsonNode{Kind: "ExprStmt", Span: spanJSON(node.Span)}
		for _, attr := range node.Attrs {
			jn.Children = append(jn.Children, nodeToJSON(attr))
		}
		jn.Children = append(jn.Children, nodeToJSON(node.X))
		return jn

	case *LiteralExpr:
		return &jsonNode{Kind: "Literal", Span: spanJSON(node.NodeSpan()), Token: node.Tok.Literal}

	case *PathExpr:
		path := ""
		for _, seg := range node.Segments {
			path += seg.Literal
		}
		return &jsonNode{Kind: "Path", Span: spanJSON(node.NodeSpan()), Path: path}

	case *ParenExpr:
		return &jsonNode{
			Kind:     "ParenExpr",
			Span:     spanJSON(node.NodeSpan()),
			Children: []*jsonNode{nodeToJSON(node.X)},
		}

	case *UnaryExpr:
		return &jsonNode{
			Kind:     "UnaryExpr",
			Span:     spanJSON(node.NodeSpan()),
			Token:    node.Op.Literal,
			Children: []*jsonNode{nodeToJSON(node.X)},
		}

	case *BinaryExpr:
		return &jsonNode{
			Kind:     "BinaryExpr",
			Span:     spanJSON(node.NodeSpan()),
			Token:    node.Op.Literal,
			Children: []*jsonNode{nodeToJSON(node.X), nodeToJSON(node.Y)},
		}

	case *AssignExpr:
		return &jsonNode{
			Kind:     "AssignExpr",
			Span:     spanJSON(node.NodeSpan()),
			Token:    node.Op.Literal,
			Children: []*jsonNode{nodeToJSON(node.X), nodeToJSON(node.Y)},
		}

	case *CallExpr:
		return &jsonNode{
			Kind:     "CallExpr",
			Span:     spanJSON(node.NodeSpan()),
			Children: []*jsonNode{nodeToJSON(node.Fun), treeToJSON(node.Args)},
		}
	}

	return &jsonNode{Kind: "Unknown"}
}

func treeToJSON(t *TokenTree) *jsonNode {
	if t == nil {
		return &jsonNode{Kind: "TokenTree"}
	}
	if t.IsLeaf() {
		return &jsonNode{
			Kind:  "Token",
			Span:  spanJSON(t.Token.Span),
			Token: t.Token.Literal,
		}
	}
	jn := &jsonNode{
		Kind:      "TokenTree",
		Span:      spanJSON(t.Span()),
		Delimiter: t.Delim.String(),
	}
	for _, child := range t.Children {
		jn.Children = append(jn.Children, treeToJSON(child))
	}
	return jn
}
