package filter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Token represents a lexical token
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

// TokenKind is the type of token
type TokenKind int

const (
	TokIdent TokenKind = iota
	TokString
	TokEq
	TokNeq
	TokLParen
	TokRParen
	TokComma
	TokAnd
	TokOr
	TokNot
	TokIn
	TokIs
	TokNull
	TokLike
	TokContains
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "Ident"
	case TokString:
		return "String"
	case TokEq:
		return "="
	case TokNeq:
		return "!="
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokComma:
		return ","
	case TokAnd:
		return "AND"
	case TokOr:
		return "OR"
	case TokNot:
		return "NOT"
	case TokIn:
		return "IN"
	case TokIs:
		return "IS"
	case TokNull:
		return "NULL"
	case TokLike:
		return "LIKE"
	case TokContains:
		return "CONTAINS"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Lexer tokenizes a filter query string
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		pos:   0,
	}
}

// Lex tokenizes the entire input
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Value: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Value: ")", Pos: start}, nil
	case ',':
		l.pos++
		return Token{Kind: TokComma, Value: ",", Pos: start}, nil
	case '=':
		l.pos++
		return Token{Kind: TokEq, Value: "=", Pos: start}, nil
	case '!':
		// "!=" is recognized greedily; a lone '!' is not a token.
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Kind: TokNeq, Value: "!=", Pos: start}, nil
		}
		return Token{}, thingsctl.LexError("unexpected character '!'", start)
	case '\'':
		return l.scanString()
	}

	if isIdentStart(ch) {
		return l.scanIdent()
	}

	return Token{}, thingsctl.LexError(fmt.Sprintf("unexpected character %q", ch), start)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < len(l.input) {
		return l.input[pos]
	}
	return 0
}

// scanString reads a single-quoted literal. A backslash escapes the
// next rune: \' yields a quote, \\ a backslash, anything else yields
// that rune verbatim.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	l.pos++ // consume opening quote
	var sb strings.Builder

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\'' {
			l.pos++ // consume closing quote
			return Token{Kind: TokString, Value: sb.String(), Pos: start}, nil
		}
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.pos++
			sb.WriteRune(l.input[l.pos])
			l.pos++
			continue
		}
		sb.WriteRune(ch)
		l.pos++
	}

	return Token{}, thingsctl.LexError("unterminated string literal", start)
}

func (l *Lexer) scanIdent() (Token, error) {
	start := l.pos

	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}

	value := string(l.input[start:l.pos])

	// Keywords are matched case-insensitively
	switch strings.ToUpper(value) {
	case "AND":
		return Token{Kind: TokAnd, Value: value, Pos: start}, nil
	case "OR":
		return Token{Kind: TokOr, Value: value, Pos: start}, nil
	case "NOT":
		return Token{Kind: TokNot, Value: value, Pos: start}, nil
	case "IN":
		return Token{Kind: TokIn, Value: value, Pos: start}, nil
	case "IS":
		return Token{Kind: TokIs, Value: value, Pos: start}, nil
	case "NULL":
		return Token{Kind: TokNull, Value: value, Pos: start}, nil
	case "LIKE":
		return Token{Kind: TokLike, Value: value, Pos: start}, nil
	case "CONTAINS":
		return Token{Kind: TokContains, Value: value, Pos: start}, nil
	}

	return Token{Kind: TokIdent, Value: value, Pos: start}, nil
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '.'
}
