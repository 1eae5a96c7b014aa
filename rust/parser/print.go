package parser

import (
	"fmt"
	"strings"
)

// NodeString renders a node as an indented tree for human inspection.
func NodeString(n Node) string {
	var b strings.Builder
	writeNode(&b, n, 0, false)
	return b.String()
}

// NodeStringWithPositions is NodeString with source spans on every line.
func NodeStringWithPositions(n Node) string {
	var b strings.Builder
	writeNode(&b, n, 0, true)
	return b.String()
}

func writeLine(b *strings.Builder, indent int, span Span, showPositions bool, format string, args ...any) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
	fmt.Fprintf(b, format, args...)
	if showPositions {
		fmt.Fprintf(b, " [%s-%s]", span.Start, span.End)
	}
	b.WriteString("\n")
}

func writeNode(b *strings.Builder, n Node, indent int, pos bool) {
	switch node := n.(type) {
	case *SourceFile:
		writeLine(b, indent, node.Span, pos, "SourceFile")
		for _, item := range node.Items {
			writeNode(b, item, indent+1, pos)
		}

	case *MacroCall:
		term := ""
		if node.Terminator != nil {
			term = " ;"
		}
		name := ""
		if node.ItemName != nil {
			name = " " + node.ItemName.Literal
		}
		writeLine(b, indent, node.Span, pos, "MacroCall %s!%s %s %s%s",
			node.PathString(), name, node.Delim, node.Position, term)
		for _, attr := range node.Attrs {
			writeNode(b, attr, indent+1, pos)
		}
		writeTree(b, node.Args, indent+1, pos)

	case *MacroDef:
		writeLine(b, indent, node.Span, pos, "MacroDef %s %s (%d rules)",
			node.Name.Literal, node.Delim, len(node.Rules))
		for _, attr := range node.Attrs {
			writeNode(b, attr, indent+1, pos)
		}
		for _, rule := range node.Rules {
			writeNode(b, rule, indent+1, pos)
		}

	case *MacroRule:
		writeLine(b, indent, node.NodeSpan(), pos, "MacroRule")
		writeTree(b, node.Pattern, indent+1, pos)
		writeTree(b, node.Template, indent+1, pos)

	case *Attribute:
		writeLine(b, indent, node.NodeSpan(), pos, "Attribute")
		writeTree(b, node.Body, indent+1, pos)

	case *Function:
		writeLine(b, indent, node.Span, pos, "Function %s", node.Name.Literal)
		for _, attr := range node.Attrs {
			writeNode(b, attr, indent+1, pos)
		}
		writeNode(b, node.Body, indent+1, pos)

	case *Block:
		writeLine(b, indent, node.NodeSpan(), pos, "Block")
		for _, stmt := range node.Stmts {
			writeNode(b, stmt, indent+1, pos)
		}

	case *Let:
		writeLine(b, indent, node.Span, pos, "Let %s", headerString(node.Header))
		for _, attr := range node.Attrs {
			writeNode(b, attr, indent+1, pos)
		}
		if node.Init != nil {
			writeNode(b, node.Init, indent+1, pos)
		}

	case *ExprStmt:
		writeLine(b, indent, node.Span, pos, "ExprStmt")
		for _, attr := range node.Attrs {
			writeNode(b, attr, indent+1, pos)
		}
		writeNode(b, node.X, indent+1, pos)

	case *LiteralExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "Literal %s", node.Tok.Literal)

	case *PathExpr:
		var path strings.Builder
		for _, seg := range node.Segments {
			path.WriteString(seg.Literal)
		}
		writeLine(b, indent, node.NodeSpan(), pos, "Path %s", path.String())

	case *ParenExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "ParenExpr")
		writeNode(b, node.X, indent+1, pos)

	case *UnaryExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "UnaryExpr %s", node.Op.Literal)
		writeNode(b, node.X, indent+1, pos)

	case *BinaryExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "BinaryExpr %s", node.Op.Literal)
		writeNode(b, node.X, indent+1, pos)
		writeNode(b, node.Y, indent+1, pos)

	case *AssignExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "AssignExpr %s", node.Op.Literal)
		writeNode(b, node.X, indent+1, pos)
		writeNode(b, node.Y, indent+1, pos)

	case *CallExpr:
		writeLine(b, indent, node.NodeSpan(), pos, "CallExpr")
		writeNode(b, node.Fun, indent+1, pos)
		writeTree(b, node.Args, indent+1, pos)
	}
}

func writeTree(b *strings.Builder, t *TokenTree, indent int, pos bool) {
	if t == nil {
		return
	}
	if t.IsLeaf() {
		writeLine(b, indent, t.Token.Span, pos, "Token %s", t.Token.Literal)
		return
	}
	writeLine(b, indent, t.Span(), pos, "TokenTree %s", t.Delim)
	for _, child := range t.Children {
		writeTree(b, child, indent+1, pos)
	}
}

func headerString(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Literal
	}
	return strings.Join(parts, " ")
}
