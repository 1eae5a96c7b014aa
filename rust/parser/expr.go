package parser

// Binary operator precedence, tightest last. Assignment is handled
// separately in parseExprFull because it is right-associative and lowest.
func binaryPrec(kind TokenKind) int {
	switch kind {
	case TokenOrOr:
		return 1
	case TokenAndAnd:
		return 2
	case TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE:
		return 3
	case TokenOr:
		return 4
	case TokenCaret:
		return 5
	case TokenAnd:
		return 6
	case TokenShl, TokenShr:
		return 7
	case TokenPlus, TokenMinus:
		return 8
	case TokenStar, TokenSlash, TokenPercent:
		return 9
	}
	return 0
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenAndAssign, TokenOrAssign,
		TokenCaretAssign, TokenShlAssign, TokenShrAssign:
		return true
	}
	return false
}

func (p *Parser) parseExprFull() (Expr, error) {
	left, err := p.parseBinaryExpr(1)
	if err != nil {
		return nil, err
	}
	if isAssignOp(p.peek().Kind) {
		op := p.advance()
		right, err := p.parseExprFull()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{X: left, Op: op, Y: right}, nil
	}
	return left, nil
}

func (p *Parser) parseBinaryExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		prec := binaryPrec(op.Kind)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{X: left, Op: op, Y: right}
	}
}

func (p *Parser) parseUnaryExpr() (Expr, error) {
	switch p.peek().Kind {
	case TokenMinus, TokenNot, TokenStar, TokenAnd:
		op := p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, X: x}, nil
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (Expr, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for p.check(TokenLParen) {
		args, err := p.parseTokenTree()
		if err != nil {
			return nil, err
		}
		expr = &CallExpr{Fun: expr, Args: args}
	}
	return expr, nil
}

func (p *Parser) parsePrimaryExpr() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenStringLiteral,
		TokenRawStringLiteral, TokenByteStringLiteral, TokenCharLiteral,
		TokenByteLiteral, TokenTrue, TokenFalse:
		p.advance()
		return &LiteralExpr{Tok: tok}, nil

	case TokenLParen:
		open := p.advance()
		inner, err := p.parseExprFull()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		return &ParenExpr{Open: open, X: inner, Close: close}, nil
	}

	if isPathSegment(tok.Kind) {
		if p.atMacroCall() {
			return p.parseMacroCallNode(nil, PositionOperand)
		}
		segments := []Token{p.advance()}
		for p.check(TokenPathSep) && isPathSegment(p.peekN(1).Kind) {
			segments = append(segments, p.advance(), p.advance())
		}
		return &PathExpr{Segments: segments}, nil
	}

	return nil, errorAt(ErrUnexpectedToken, tok.Span, "expected expression, got %s", tok.Kind)
}
