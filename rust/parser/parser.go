package parser

import "io"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithMaxDepth overrides the token-tree nesting limit. The limit exists so
// that pathologically nested input fails with NestingTooDeep instead of
// exhausting the call stack.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

const defaultMaxDepth = 256

type parseFunc func(*Parser) (Node, error)

type Parser struct {
	file            string
	includeComments bool
	maxDepth        int
	reader          io.Reader
	input           []byte
	lexer           *Lexer
	tokens          []Token
	comments        []Token
	pos             int
	depth           int
	entry           parseFunc
	callPos         SyntacticPosition
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		reader:   r,
		entry:    entry,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses a whole source file: a sequence of items.
func ParseFile(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSourceFile, opts)
}

// ParseStatement parses a single statement.
func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseStmtEntry, opts)
}

func (p *Parser) Comments() []Token {
	return p.comments
}

// Source returns the raw input; node spans index into it by offset.
func (p *Parser) Source() []byte {
	return p.input
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish runs the parser to completion. On failure the returned node is nil
// and the error is a *ParseError carrying the kind and span of the first
// failure; no partial node is ever produced.
func (p *Parser) Finish() (Node, error) {
	if err := p.readAll(); err != nil {
		return nil, err
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tokens = nil
	p.pos = 0
	p.depth = 0
	p.tokenize()
	return p.entry(p)
}

func (p *Parser) tokenize() {
	for {
		tok := p.lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		if tok.Kind == TokenLineComment || tok.Kind == TokenBlockComment {
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) atEnd() bool {
	return p.check(TokenEOF)
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, errorAt(ErrUnexpectedToken, tok.Span, "expected %s, got %s", kind, tok.Kind)
	}
	p.advance()
	return tok, nil
}

func (p *Parser) parseSourceFile() (Node, error) {
	file := &SourceFile{}
	file.Span.Start = p.peek().Span.Start

	for !p.atEnd() {
		// Stray semicolons at the top level are empty items.
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		file.Items = append(file.Items, item)
	}

	if p.pos > 0 {
		file.Span.End = p.tokens[p.pos-1].Span.End
	}
	return file, nil
}

func (p *Parser) parseItem() (Node, error) {
	attrs, err := p.parseOuterAttributes()
	if err != nil {
		return nil, err
	}

	switch {
	case p.atMacroRulesDef():
		return p.parseMacroDef(attrs)
	case p.check(TokenFn):
		return p.parseFunction(attrs)
	case p.atMacroCall():
		return p.parseMacroCallNode(attrs, PositionItem)
	}

	tok := p.peek()
	return nil, errorAt(ErrUnexpectedToken, tok.Span, "expected item, got %s", tok.Kind)
}

// parseOuterAttributes consumes a run of leading `#[...]` attributes. The
// bracketed body is kept opaque; attributes are carried, never evaluated.
func (p *Parser) parseOuterAttributes() ([]*Attribute, error) {
	var attrs []*Attribute
	for p.check(TokenPound) && p.peekN(1).Kind == TokenLBracket {
		pound := p.advance()
		body, err := p.parseTokenTree()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, &Attribute{Pound: pound, Body: body})
	}
	return attrs, nil
}

func (p *Parser) parseFunction(attrs []*Attribute) (Node, error) {
	fn := p.advance()
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	params, err := p.parseTokenTree()
	if err != nil {
		return nil, err
	}

	// Return type and where clause stay raw; nested groups are flattened.
	var ret []Token
	for !p.check(TokenLBrace) && !p.atEnd() {
		if openDelimiter(p.peek().Kind) != DelimNone {
			tree, err := p.parseTokenTree()
			if err != nil {
				return nil, err
			}
			ret = append(ret, tree.Tokens()...)
			continue
		}
		ret = append(ret, p.advance())
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &Function{
		Attrs:  attrs,
		Fn:     fn,
		Name:   name,
		Params: params,
		Ret:    ret,
		Body:   body,
		Span:   Span{Start: fn.Span.Start, End: body.Close.Span.End},
	}, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	block := &Block{Open: open}
	for !p.check(TokenRBrace) {
		if p.atEnd() {
			return nil, errorAt(ErrUnterminatedTokenTree, open.Span, "unterminated block")
		}
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	block.Close = p.advance()
	return block, nil
}

func (p *Parser) parseStmtEntry() (Node, error) {
	return p.parseStmt()
}

func (p *Parser) parseStmt() (Node, error) {
	attrs, err := p.parseOuterAttributes()
	if err != nil {
		return nil, err
	}

	switch {
	case p.atMacroRulesDef():
		return p.parseMacroDef(attrs)
	case p.check(TokenLet):
		return p.parseLet(attrs)
	case p.check(TokenFn):
		return p.parseFunction(attrs)
	}
	return p.parseExprStmt(attrs)
}

// parseLet keeps everything between `let` and `=` as raw header tokens
// (pattern, mut, type ascription); only the initializer is parsed, since
// that is where macro calls appear.
func (p *Parser) parseLet(attrs []*Attribute) (Node, error) {
	let := p.advance()
	stmt := &Let{Attrs: attrs, Let: let}

	for !p.check(TokenAssign) && !p.check(TokenSemicolon) {
		if p.atEnd() {
			tok := p.peek()
			return nil, errorAt(ErrUnexpectedToken, tok.Span, "unterminated let statement")
		}
		if openDelimiter(p.peek().Kind) != DelimNone {
			tree, err := p.parseTokenTree()
			if err != nil {
				return nil, err
			}
			stmt.Header = append(stmt.Header, tree.Tokens()...)
			continue
		}
		stmt.Header = append(stmt.Header, p.advance())
	}

	if p.check(TokenAssign) {
		p.advance()
		init, err := p.parseExprFull()
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	}

	semi := p.peek()
	if semi.Kind != TokenSemicolon {
		return nil, errorAt(ErrMissingStatementTerminator, semi.Span, "expected ; after let statement, got %s", semi.Kind)
	}
	p.advance()
	stmt.Semi = semi
	stmt.Span = Span{Start: let.Span.Start, End: semi.Span.End}
	return stmt, nil
}

// parseExprStmt parses an expression statement and applies the terminator
// policy: a statement that is exactly a brace-delimited macro call needs no
// semicolon; everything else does.
func (p *Parser) parseExprStmt(attrs []*Attribute) (Node, error) {
	expr, err := p.parseExprFull()
	if err != nil {
		return nil, err
	}

	if call, ok := expr.(*MacroCall); ok {
		call.Attrs = attrs
		call.Position = PositionStatement
		if call.Delim == DelimBrace {
			// `foo! {}` is a complete statement; a written `;` is consumed.
			if p.check(TokenSemicolon) {
				semi := p.advance()
				call.Terminator = &semi
				call.Span.End = semi.Span.End
			}
			return call, nil
		}
		semi := p.peek()
		if semi.Kind != TokenSemicolon {
			return nil, errorAt(ErrMissingStatementTerminator, semi.Span, "macro call statement with %s arguments requires ;, got %s", call.Delim, semi.Kind)
		}
		p.advance()
		call.Terminator = &semi
		call.Span.End = semi.Span.End
		return call, nil
	}

	semi := p.peek()
	if semi.Kind != TokenSemicolon {
		return nil, errorAt(ErrMissingStatementTerminator, semi.Span, "expected ; after expression statement, got %s", semi.Kind)
	}
	p.advance()
	return &ExprStmt{
		Attrs: attrs,
		X:     expr,
		Semi:  &semi,
		Span:  Span{Start: expr.NodeSpan().Start, End: semi.Span.End},
	}, nil
}
