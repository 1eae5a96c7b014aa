package parser

import "io"

// ParseMacroCall parses a single macro invocation in the given syntactic
// position. Item and statement positions apply their terminator policy;
// operand position leaves the token after the argument tree untouched.
func ParseMacroCall(r io.Reader, position SyntacticPosition, opts ...Option) *Parser {
	p := newParser(r, (*Parser).parseMacroCallEntry, opts)
	p.callPos = position
	return p
}

// ParseMacroDef parses a single `macro_rules!` definition.
func ParseMacroDef(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseMacroDefEntry, opts)
}

func (p *Parser) parseMacroCallEntry() (Node, error) {
	attrs, err := p.parseOuterAttributes()
	if err != nil {
		return nil, err
	}
	return p.parseMacroCallNode(attrs, p.callPos)
}

func (p *Parser) parseMacroDefEntry() (Node, error) {
	attrs, err := p.parseOuterAttributes()
	if err != nil {
		return nil, err
	}
	if !p.atMacroRulesDef() {
		tok := p.peek()
		return nil, errorAt(ErrUnexpectedToken, tok.Span, "expected macro_rules!, got %s", tok.Kind)
	}
	return p.parseMacroDef(attrs)
}

// atMacroRulesDef reports whether the cursor sits on a macro definition.
// The identifier macro_rules alone is not enough: it must be immediately
// followed by `!`, otherwise it is an ordinary variable name.
func (p *Parser) atMacroRulesDef() bool {
	return p.check(TokenIdent) &&
		p.peek().Literal == "macro_rules" &&
		p.peekN(1).Kind == TokenNot &&
		p.peekN(2).Kind == TokenIdent
}

// atMacroCall reports whether the cursor sits on `path !`, where path is
// one or more `::`-separated segments.
func (p *Parser) atMacroCall() bool {
	if !isPathSegment(p.peek().Kind) {
		return false
	}
	i := 0
	for p.peekN(i+1).Kind == TokenPathSep && isPathSegment(p.peekN(i+2).Kind) {
		i += 2
	}
	return p.peekN(i+1).Kind == TokenNot
}

// parseMacroPath consumes the macro path tokens and the `!`.
func (p *Parser) parseMacroPath() ([]Token, Token, error) {
	first := p.peek()
	if !isPathSegment(first.Kind) {
		return nil, Token{}, errorAt(ErrUnexpectedToken, first.Span, "expected macro path, got %s", first.Kind)
	}
	path := []Token{p.advance()}
	for p.check(TokenPathSep) && isPathSegment(p.peekN(1).Kind) {
		path = append(path, p.advance(), p.advance())
	}
	bang, err := p.expect(TokenNot)
	if err != nil {
		return nil, Token{}, err
	}
	return path, bang, nil
}

// parseMacroCallNode recognizes a full macro invocation: path, `!`, an
// optional item name (item position only), and one balanced token tree
// whose delimiter kind is recorded verbatim. The argument tree's contents
// are not inspected; named-prefix conventions like `target: "smbc"` travel
// inside the opaque tree.
func (p *Parser) parseMacroCallNode(attrs []*Attribute, position SyntacticPosition) (*MacroCall, error) {
	path, bang, err := p.parseMacroPath()
	if err != nil {
		return nil, err
	}

	call := &MacroCall{
		Attrs:    attrs,
		Path:     path,
		Bang:     bang,
		Position: position,
	}

	// Item macros may name the item they produce: `peg! parser_definition(...)`.
	if position == PositionItem && p.check(TokenIdent) && openDelimiter(p.peekN(1).Kind) != DelimNone {
		name := p.advance()
		call.ItemName = &name
	}

	next := p.peek()
	if openDelimiter(next.Kind) == DelimNone {
		return nil, errorAt(ErrExpectedMacroArguments, next.Span, "expected macro arguments after !, got %s", next.Kind)
	}

	args, err := p.parseTokenTree()
	if err != nil {
		return nil, err
	}
	call.Delim = args.Delim
	call.Args = args
	call.Span = Span{Start: path[0].Span.Start, End: args.Close.Span.End}

	switch position {
	case PositionItem:
		// Never required at item level; consume a written one.
		if p.check(TokenSemicolon) {
			semi := p.advance()
			call.Terminator = &semi
			call.Span.End = semi.Span.End
		}
	case PositionStatement:
		if call.Delim == DelimBrace {
			if p.check(TokenSemicolon) {
				semi := p.advance()
				call.Terminator = &semi
				call.Span.End = semi.Span.End
			}
		} else {
			semi := p.peek()
			if semi.Kind != TokenSemicolon {
				return nil, errorAt(ErrMissingStatementTerminator, semi.Span, "macro call statement with %s arguments requires ;, got %s", call.Delim, semi.Kind)
			}
			p.advance()
			call.Terminator = &semi
			call.Span.End = semi.Span.End
		}
	case PositionOperand:
		// The surrounding expression owns whatever follows.
	}

	return call, nil
}

// parseMacroDef recognizes `macro_rules! name` followed by a rules body in
// any of the three delimiter kinds. The body decomposes into zero or more
// `pattern => template` rules separated by `;`; the separator is mandatory
// between rules and optional after the last one. Patterns and templates
// stay opaque.
func (p *Parser) parseMacroDef(attrs []*Attribute) (*MacroDef, error) {
	keyword := p.advance() // macro_rules
	p.advance()            // !
	name := p.advance()

	body, err := p.parseTokenTree()
	if err != nil {
		return nil, err
	}

	def := &MacroDef{
		Attrs: attrs,
		Name:  name,
		Delim: body.Delim,
		Span:  Span{Start: keyword.Span.Start, End: body.Close.Span.End},
	}

	rules, err := splitMacroRules(body)
	if err != nil {
		return nil, err
	}
	def.Rules = rules

	// Non-brace definition bodies are written with a trailing `;` at item
	// level; consume it when present.
	if body.Delim != DelimBrace && p.check(TokenSemicolon) {
		semi := p.advance()
		def.Span.End = semi.Span.End
	}

	return def, nil
}

func splitMacroRules(body *TokenTree) ([]*MacroRule, error) {
	var rules []*MacroRule
	children := body.Children
	i := 0
	for i < len(children) {
		pattern := children[i]
		if pattern.IsLeaf() {
			return nil, errorAt(ErrUnexpectedToken, pattern.Span(), "expected macro rule pattern, got %s", pattern.Token.Kind)
		}
		i++

		if i >= len(children) || !children[i].IsLeaf() || children[i].Token.Kind != TokenFatArrow {
			span := pattern.Span()
			if i < len(children) {
				span = children[i].Span()
			}
			return nil, errorAt(ErrUnexpectedToken, span, "expected => after macro rule pattern")
		}
		i++

		if i >= len(children) || children[i].IsLeaf() {
			span := body.Close.Span
			if i < len(children) {
				span = children[i].Span()
			}
			return nil, errorAt(ErrUnexpectedToken, span, "expected macro rule template")
		}
		template := children[i]
		i++

		rules = append(rules, &MacroRule{Pattern: pattern, Template: template})

		if i < len(children) {
			sep := children[i]
			if !sep.IsLeaf() || sep.Token.Kind != TokenSemicolon {
				return nil, errorAt(ErrExpectedRuleSeparator, sep.Span(), "expected ; between macro rules")
			}
			i++
		}
	}
	return rules, nil
}
