// Package parser recognizes macro invocation and definition syntax in Rust
// source files. Macro arguments are captured as raw token trees and never
// interpreted; expanding them is a later phase that does not live here.
package parser

import "strings"

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()
	NodeSpan() Span
}

// SyntacticPosition classifies where a macro call was encountered. The only
// behavioral divergence between positions is the trailing-semicolon policy.
type SyntacticPosition int

const (
	// PositionItem: top-level (or module-level) macro call. A written `;`
	// is consumed and recorded but never required.
	PositionItem SyntacticPosition = iota
	// PositionStatement: macro call standing alone as a statement. `;` is
	// required unless the call used brace delimiters.
	PositionStatement
	// PositionOperand: macro call as an expression operand; terminator
	// handling belongs to the surrounding statement.
	PositionOperand
)

func (p SyntacticPosition) String() string {
	switch p {
	case PositionItem:
		return "item"
	case PositionStatement:
		return "statement"
	case PositionOperand:
		return "operand"
	}
	return "unknown"
}

// SourceFile is the root node: a sequence of items.
type SourceFile struct {
	Items []Node
	Span  Span
}

func (*SourceFile) node()            {}
func (f *SourceFile) NodeSpan() Span { return f.Span }

// Attribute is a `#[...]` prefix. The bracketed body is an opaque token
// tree; condition evaluation (cfg and friends) is out of scope, the
// attribute is only carried on the node it gates.
type Attribute struct {
	Pound Token
	Body  *TokenTree
}

func (*Attribute) node() {}
func (a *Attribute) NodeSpan() Span {
	return Span{Start: a.Pound.Span.Start, End: a.Body.Span().End}
}

// MacroCall is an invocation `path!(...)`, `path![...]` or `path!{...}`.
// ItemName is the optional identifier between `!` and the delimiter that
// item-position macros accept (`peg! parser_definition(...)`).
type MacroCall struct {
	Attrs      []*Attribute
	Path       []Token
	Bang       Token
	ItemName   *Token
	Delim      Delimiter
	Args       *TokenTree
	Position   SyntacticPosition
	Terminator *Token
	Span       Span
}

func (*MacroCall) node()            {}
func (c *MacroCall) NodeSpan() Span { return c.Span }

// PathString renders the invoked path, e.g. "crate::foo".
func (c *MacroCall) PathString() string {
	var b strings.Builder
	for _, tok := range c.Path {
		b.WriteString(tok.Literal)
	}
	return b.String()
}

// RequiresTerminator reports whether the statement-terminator policy for
// this call's position and delimiter demands a trailing semicolon.
func (c *MacroCall) RequiresTerminator() bool {
	return c.Position == PositionStatement && c.Delim != DelimBrace
}

// MacroRule is one `pattern => template` arm of a macro definition. Both
// sides are opaque token trees.
type MacroRule struct {
	Pattern  *TokenTree
	Template *TokenTree
}

func (*MacroRule) node() {}
func (r *MacroRule) NodeSpan() Span {
	return Span{Start: r.Pattern.Span().Start, End: r.Template.Span().End}
}

// MacroDef is a `macro_rules! name { ... }` definition. The rules body may
// use any of the three delimiter kinds; zero rules is legal.
type MacroDef struct {
	Attrs []*Attribute
	Name  Token
	Delim Delimiter
	Rules []*MacroRule
	Span  Span
}

func (*MacroDef) node()            {}
func (d *MacroDef) NodeSpan() Span { return d.Span }

// Function is a `fn` item. The signature between the parameter list and the
// body (return type, where clause) is kept as raw tokens; only the body's
// statements are parsed, since that is where macro calls live.
type Function struct {
	Attrs  []*Attribute
	Fn     Token
	Name   Token
	Params *TokenTree
	Ret    []Token
	Body   *Block
	Span   Span
}

func (*Function) node()            {}
func (f *Function) NodeSpan() Span { return f.Span }

// Block is a `{ ... }` statement sequence.
type Block struct {
	Open  Token
	Stmts []Node
	Close Token
}

func (*Block) node() {}
func (b *Block) NodeSpan() Span {
	return Span{Start: b.Open.Span.Start, End: b.Close.Span.End}
}

// Let is a `let` statement. Everything between `let` and `=` (pattern,
// mut, type ascription) is kept as raw header tokens.
type Let struct {
	Attrs  []*Attribute
	Let    Token
	Header []Token
	Init   Expr
	Semi   Token
	Span   Span
}

func (*Let) node()            {}
func (l *Let) NodeSpan() Span { return l.Span }

// ExprStmt is an expression in statement position, with its optional
// terminator.
type ExprStmt struct {
	Attrs []*Attribute
	X     Expr
	Semi  *Token
	Span  Span
}

func (*ExprStmt) node()            {}
func (s *ExprStmt) NodeSpan() Span { return s.Span }

// Expr is the interface implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

type LiteralExpr struct {
	Tok Token
}

func (*LiteralExpr) node()            {}
func (*LiteralExpr) exprNode()        {}
func (e *LiteralExpr) NodeSpan() Span { return e.Tok.Span }

// PathExpr is a plain identifier or a `::`-separated path used as a value.
type PathExpr struct {
	Segments []Token
}

func (*PathExpr) node()     {}
func (*PathExpr) exprNode() {}
func (e *PathExpr) NodeSpan() Span {
	return Span{
		Start: e.Segments[0].Span.Start,
		End:   e.Segments[len(e.Segments)-1].Span.End,
	}
}

type ParenExpr struct {
	Open  Token
	X     Expr
	Close Token
}

func (*ParenExpr) node()     {}
func (*ParenExpr) exprNode() {}
func (e *ParenExpr) NodeSpan() Span {
	return Span{Start: e.Open.Span.Start, End: e.Close.Span.End}
}

type UnaryExpr struct {
	Op Token
	X  Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}
func (e *UnaryExpr) NodeSpan() Span {
	return Span{Start: e.Op.Span.Start, End: e.X.NodeSpan().End}
}

type BinaryExpr struct {
	X  Expr
	Op Token
	Y  Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) NodeSpan() Span {
	return Span{Start: e.X.NodeSpan().Start, End: e.Y.NodeSpan().End}
}

// AssignExpr covers `=` and the compound assignment operators.
type AssignExpr struct {
	X  Expr
	Op Token
	Y  Expr
}

func (*AssignExpr) node()     {}
func (*AssignExpr) exprNode() {}
func (e *AssignExpr) NodeSpan() Span {
	return Span{Start: e.X.NodeSpan().Start, End: e.Y.NodeSpan().End}
}

// CallExpr is an ordinary function call. The argument list is carried as an
// opaque token tree, mirroring how macro arguments are treated.
type CallExpr struct {
	Fun  Expr
	Args *TokenTree
}

func (*CallExpr) node()     {}
func (*CallExpr) exprNode() {}
func (e *CallExpr) NodeSpan() Span {
	return Span{Start: e.Fun.NodeSpan().Start, End: e.Args.Span().End}
}

func (*MacroCall) exprNode() {}
