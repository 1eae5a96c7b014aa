package parser

import (
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	// Raw identifiers and raw strings share the r prefix.
	if ch == 'r' && (l.peekN(1) == '"' || l.peekN(1) == '#') {
		if tok, ok := l.scanRawPrefixed(startPos); ok {
			return tok
		}
	}

	// Byte literals: b'x', b"...", br"...".
	if ch == 'b' {
		switch l.peekN(1) {
		case '\'':
			return l.scanByteLiteral(startPos)
		case '"':
			return l.scanByteString(startPos)
		case 'r':
			if l.peekN(2) == '"' || l.peekN(2) == '#' {
				l.advance()
				if tok, ok := l.scanRawPrefixed(startPos); ok {
					tok.Kind = TokenByteStringLiteral
					return tok
				}
			}
		}
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharOrLifetime(startPos)
	}

	if ch == '"' {
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

// Block comments nest, unlike in most C-family grammars.
func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	depth := 1
	for depth > 0 {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '/' && l.peekN(1) == '*' {
			depth++
			l.advanceN(2)
			continue
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			depth--
			l.advanceN(2)
			continue
		}
		l.advance()
	}
	return l.token(TokenBlockComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind:    LookupKeyword(literal),
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

// scanRawPrefixed handles r"...", r#"..."# (any number of hashes) and
// raw identifiers r#name. Returns ok=false when the r turns out to start a
// plain identifier after all.
func (l *Lexer) scanRawPrefixed(start Position) (Token, bool) {
	hashes := 0
	for l.peekN(1+hashes) == '#' {
		hashes++
	}
	if l.peekN(1+hashes) == '"' {
		l.advanceN(1 + hashes + 1)
		l.scanRawStringBody(hashes)
		return l.token(TokenRawStringLiteral, start), true
	}
	if hashes == 1 && isIdentStart(l.peekN(2)) {
		l.advanceN(2)
		for isIdentContinue(l.peek()) {
			l.advance()
		}
		return l.token(TokenRawIdent, start), true
	}
	return Token{}, false
}

func (l *Lexer) scanRawStringBody(hashes int) {
	for l.peek() != 0 {
		if l.peek() == '"' {
			matched := true
			for i := 0; i < hashes; i++ {
				if l.peekN(1+i) != '#' {
					matched = false
					break
				}
			}
			if matched {
				l.advanceN(1 + hashes)
				return
			}
		}
		l.advance()
	}
}

func (l *Lexer) scanByteLiteral(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\'' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.token(TokenByteLiteral, start)
}

func (l *Lexer) scanByteString(start Position) Token {
	l.advance()
	tok := l.scanStringLiteral(start)
	tok.Kind = TokenByteStringLiteral
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.scanNumericSuffix()
		return l.token(TokenIntLiteral, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'o' || l.peekN(1) == 'b') {
		l.advanceN(2)
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.scanNumericSuffix()
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	// A dot only continues the number when followed by a digit; `0..10`
	// and method calls like `1.max(2)` keep the dot as its own token.
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
	}

	if suffix := l.scanNumericSuffix(); suffix != "" {
		if suffix == "f32" || suffix == "f64" {
			isFloat = true
		}
	}

	kind := TokenIntLiteral
	if isFloat {
		kind = TokenFloatLiteral
	}
	return l.token(kind, start)
}

// Type suffixes such as 42u32 or 1.5f64 belong to the literal token.
func (l *Lexer) scanNumericSuffix() string {
	if !isIdentStart(l.peek()) {
		return ""
	}
	start := l.pos
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// scanCharOrLifetime disambiguates 'a' (char) from 'a (lifetime): after the
// quote, an identifier run not closed by another quote is a lifetime.
func (l *Lexer) scanCharOrLifetime(start Position) Token {
	if isIdentStart(l.peekN(1)) && l.peekN(2) != '\'' {
		l.advance()
		for isIdentContinue(l.peek()) {
			l.advance()
		}
		return l.token(TokenLifetime, start)
	}

	l.advance()
	for l.peek() != 0 && l.peek() != '\'' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.token(TokenCharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '#':
		l.advance()
		return l.token(TokenPound, start)
	case '$':
		l.advance()
		return l.token(TokenDollar, start)
	case '?':
		l.advance()
		return l.token(TokenQuestion, start)

	case '.':
		if l.peekN(1) == '.' {
			if l.peekN(2) == '.' {
				l.advanceN(3)
				return l.token(TokenDotDotDot, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenDotDotEq, start)
			}
			l.advanceN(2)
			return l.token(TokenDotDot, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenPathSep, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenFatArrow, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAndAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOrOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenCaretAssign, start)
		}
		l.advance()
		return l.token(TokenCaret, start)

	case '+':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || r == '_'
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	return isIdentStart(ch) || isDigit(ch)
}
