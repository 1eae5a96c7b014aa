package parser

// Delimiter identifies which bracket pair wraps a token tree group.
type Delimiter int

const (
	DelimNone Delimiter = iota
	DelimParen
	DelimBracket
	DelimBrace
)

func (d Delimiter) String() string {
	switch d {
	case DelimParen:
		return "()"
	case DelimBracket:
		return "[]"
	case DelimBrace:
		return "{}"
	}
	return "none"
}

func (d Delimiter) OpenKind() TokenKind {
	switch d {
	case DelimParen:
		return TokenLParen
	case DelimBracket:
		return TokenLBracket
	case DelimBrace:
		return TokenLBrace
	}
	return TokenError
}

func (d Delimiter) CloseKind() TokenKind {
	switch d {
	case DelimParen:
		return TokenRParen
	case DelimBracket:
		return TokenRBracket
	case DelimBrace:
		return TokenRBrace
	}
	return TokenError
}

func openDelimiter(kind TokenKind) Delimiter {
	switch kind {
	case TokenLParen:
		return DelimParen
	case TokenLBracket:
		return DelimBracket
	case TokenLBrace:
		return DelimBrace
	}
	return DelimNone
}

func isCloseDelimiter(kind TokenKind) bool {
	switch kind {
	case TokenRParen, TokenRBracket, TokenRBrace:
		return true
	}
	return false
}

// TokenTree is either a single token (leaf, Token != nil) or a
// delimiter-wrapped group of nested trees. Macro arguments, macro-rule
// patterns and templates are all carried as opaque token trees; their
// contents are never interpreted here.
type TokenTree struct {
	Token    *Token
	Delim    Delimiter
	Open     Token
	Close    Token
	Children []*TokenTree
}

func (t *TokenTree) IsLeaf() bool {
	return t.Token != nil
}

func (t *TokenTree) Span() Span {
	if t.Token != nil {
		return t.Token.Span
	}
	return Span{Start: t.Open.Span.Start, End: t.Close.Span.End}
}

// Tokens flattens the tree back into the token sequence it was built from,
// including the group's own delimiters.
func (t *TokenTree) Tokens() []Token {
	var out []Token
	t.appendTokens(&out)
	return out
}

func (t *TokenTree) appendTokens(out *[]Token) {
	if t.Token != nil {
		*out = append(*out, *t.Token)
		return
	}
	*out = append(*out, t.Open)
	for _, child := range t.Children {
		child.appendTokens(out)
	}
	*out = append(*out, t.Close)
}

// parseTokenTree consumes one balanced group. The cursor must sit on an
// opening delimiter; the group closes when that opener's matching closer
// appears at its own depth. A closer of the wrong kind, or EOF first, is a
// hard error.
func (p *Parser) parseTokenTree() (*TokenTree, error) {
	open := p.peek()
	delim := openDelimiter(open.Kind)
	if delim == DelimNone {
		return nil, errorAt(ErrUnexpectedToken, open.Span, "expected (, [ or {, got %s", open.Kind)
	}
	if p.depth >= p.maxDepth {
		return nil, errorAt(ErrNestingTooDeep, open.Span, "token trees nested deeper than %d", p.maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()
	p.advance()

	tree := &TokenTree{Delim: delim, Open: open}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenEOF:
			return nil, errorAt(ErrUnterminatedTokenTree, open.Span, "unterminated %s token tree", delim)
		case tok.Kind == delim.CloseKind():
			p.advance()
			tree.Close = tok
			return tree, nil
		case isCloseDelimiter(tok.Kind):
			return nil, errorAt(ErrMismatchedDelimiter, tok.Span, "mismatched closing %s inside %s token tree", tok.Kind, delim)
		case openDelimiter(tok.Kind) != DelimNone:
			child, err := p.parseTokenTree()
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, child)
		default:
			p.advance()
			tree.Children = append(tree.Children, &TokenTree{Token: &tok})
		}
	}
}
