package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenLineComment
	TokenBlockComment

	// Literals
	TokenIdent
	TokenRawIdent
	TokenLifetime
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenByteLiteral
	TokenStringLiteral
	TokenRawStringLiteral
	TokenByteStringLiteral
	TokenTrue
	TokenFalse

	// Keywords
	TokenAs
	TokenBreak
	TokenConst
	TokenContinue
	TokenCrate
	TokenDyn
	TokenElse
	TokenEnum
	TokenExtern
	TokenFn
	TokenFor
	TokenIf
	TokenImpl
	TokenIn
	TokenLet
	TokenLoop
	TokenMatch
	TokenMod
	TokenMove
	TokenMut
	TokenPub
	TokenRef
	TokenReturn
	TokenSelfValue
	TokenSelfType
	TokenStatic
	TokenStruct
	TokenSuper
	TokenTrait
	TokenType
	TokenUnsafe
	TokenUse
	TokenWhere
	TokenWhile

	// Delimiters and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenDotDot
	TokenDotDotDot
	TokenDotDotEq
	TokenAt
	TokenPound
	TokenDollar
	TokenQuestion
	TokenColon
	TokenPathSep
	TokenArrow
	TokenFatArrow

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenNot
	TokenAndAnd
	TokenOrOr
	TokenAnd
	TokenOr
	TokenCaret
	TokenShl
	TokenShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenCaretAssign
	TokenShlAssign
	TokenShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenError:             "Error",
	TokenWhitespace:        "Whitespace",
	TokenLineComment:       "LineComment",
	TokenBlockComment:      "BlockComment",
	TokenIdent:             "Identifier",
	TokenRawIdent:          "RawIdentifier",
	TokenLifetime:          "Lifetime",
	TokenIntLiteral:        "IntLiteral",
	TokenFloatLiteral:      "FloatLiteral",
	TokenCharLiteral:       "CharLiteral",
	TokenByteLiteral:       "ByteLiteral",
	TokenStringLiteral:     "StringLiteral",
	TokenRawStringLiteral:  "RawStringLiteral",
	TokenByteStringLiteral: "ByteStringLiteral",
	TokenTrue:              "true",
	TokenFalse:             "false",
	TokenAs:                "as",
	TokenBreak:             "break",
	TokenConst:             "const",
	TokenContinue:          "continue",
	TokenCrate:             "crate",
	TokenDyn:               "dyn",
	TokenElse:              "else",
	TokenEnum:              "enum",
	TokenExtern:            "extern",
	TokenFn:                "fn",
	TokenFor:               "for",
	TokenIf:                "if",
	TokenImpl:              "impl",
	TokenIn:                "in",
	TokenLet:               "let",
	TokenLoop:              "loop",
	TokenMatch:             "match",
	TokenMod:               "mod",
	TokenMove:              "move",
	TokenMut:               "mut",
	TokenPub:               "pub",
	TokenRef:               "ref",
	TokenReturn:            "return",
	TokenSelfValue:         "self",
	TokenSelfType:          "Self",
	TokenStatic:            "static",
	TokenStruct:            "struct",
	TokenSuper:             "super",
	TokenTrait:             "trait",
	TokenType:              "type",
	TokenUnsafe:            "unsafe",
	TokenUse:               "use",
	TokenWhere:             "where",
	TokenWhile:             "while",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenSemicolon:         ";",
	TokenComma:             ",",
	TokenDot:               ".",
	TokenDotDot:            "..",
	TokenDotDotDot:         "...",
	TokenDotDotEq:          "..=",
	TokenAt:                "@",
	TokenPound:             "#",
	TokenDollar:            "$",
	TokenQuestion:          "?",
	TokenColon:             ":",
	TokenPathSep:           "::",
	TokenArrow:             "->",
	TokenFatArrow:          "=>",
	TokenAssign:            "=",
	TokenEQ:                "==",
	TokenNE:                "!=",
	TokenLT:                "<",
	TokenLE:                "<=",
	TokenGT:                ">",
	TokenGE:                ">=",
	TokenNot:               "!",
	TokenAndAnd:            "&&",
	TokenOrOr:              "||",
	TokenAnd:               "&",
	TokenOr:                "|",
	TokenCaret:             "^",
	TokenShl:               "<<",
	TokenShr:               ">>",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenSlash:             "/",
	TokenPercent:           "%",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenSlashAssign:       "/=",
	TokenPercentAssign:     "%=",
	TokenAndAssign:         "&=",
	TokenOrAssign:          "|=",
	TokenCaretAssign:       "^=",
	TokenShlAssign:         "<<=",
	TokenShrAssign:         ">>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// macro_rules is not a keyword; it stays an ordinary identifier and only
// becomes significant when immediately followed by `!`.
var keywords = map[string]TokenKind{
	"as":       TokenAs,
	"break":    TokenBreak,
	"const":    TokenConst,
	"continue": TokenContinue,
	"crate":    TokenCrate,
	"dyn":      TokenDyn,
	"else":     TokenElse,
	"enum":     TokenEnum,
	"extern":   TokenExtern,
	"false":    TokenFalse,
	"fn":       TokenFn,
	"for":      TokenFor,
	"if":       TokenIf,
	"impl":     TokenImpl,
	"in":       TokenIn,
	"let":      TokenLet,
	"loop":     TokenLoop,
	"match":    TokenMatch,
	"mod":      TokenMod,
	"move":     TokenMove,
	"mut":      TokenMut,
	"pub":      TokenPub,
	"ref":      TokenRef,
	"return":   TokenReturn,
	"self":     TokenSelfValue,
	"Self":     TokenSelfType,
	"static":   TokenStatic,
	"struct":   TokenStruct,
	"super":    TokenSuper,
	"trait":    TokenTrait,
	"true":     TokenTrue,
	"type":     TokenType,
	"unsafe":   TokenUnsafe,
	"use":      TokenUse,
	"where":    TokenWhere,
	"while":    TokenWhile,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// isPathSegment reports whether a token can appear as a segment of a macro
// path (crate::foo, self::bar, ...).
func isPathSegment(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenRawIdent, TokenCrate, TokenSelfValue, TokenSuper:
		return true
	}
	return false
}
