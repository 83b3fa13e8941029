package filter

import (
	"fmt"
	"strings"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Parse parses a filter query string into an expression AST.
//
// Precedence is NOT > AND > OR, with parentheses for explicit
// grouping. Literals are single-quoted; a bare identifier is accepted
// as a literal where it is unambiguous (status = open). Operator/field
// compatibility is checked here, so a successfully parsed expression
// always evaluates cleanly.
func Parse(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, thingsctl.EmptyQueryError()
	}

	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, pos: 0}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(TokEOF) {
		return nil, thingsctl.ParseError("unexpected token after expression", p.current().Value)
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TokOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.match(TokAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.match(TokNot) {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	if p.match(TokLParen) {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			return nil, thingsctl.ParseError("expected ')'", p.current().Value)
		}
		p.advance()
		return expr, nil
	}

	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	switch p.current().Kind {
	case TokIdent:
	case TokEOF:
		return nil, thingsctl.ParseError("unexpected end of expression, expected a field name", "")
	default:
		return nil, thingsctl.ParseError("expected a field name", p.current().Value)
	}

	name := p.current().Value
	field, ok := ParseField(name)
	if !ok {
		return nil, thingsctl.ParseError(fmt.Sprintf("unknown field %q", name), name)
	}
	p.advance()

	var op Op
	cmp := Compare{Field: field}

	switch p.current().Kind {
	case TokEq, TokNeq:
		if p.current().Kind == TokEq {
			op = OpEq
		} else {
			op = OpNeq
		}
		p.advance()
		value, err := p.expectValue()
		if err != nil {
			return nil, err
		}
		cmp.Value = value

	case TokLike:
		op = OpLike
		p.advance()
		value, err := p.expectValue()
		if err != nil {
			return nil, err
		}
		cmp.Value = value

	case TokContains:
		op = OpContains
		p.advance()
		value, err := p.expectValue()
		if err != nil {
			return nil, err
		}
		cmp.Value = value

	case TokIn:
		op = OpIn
		p.advance()
		values, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		cmp.Values = values

	case TokIs:
		p.advance()
		op = OpIsNull
		if p.match(TokNot) {
			p.advance()
			op = OpIsNotNull
		}
		if !p.match(TokNull) {
			return nil, thingsctl.ParseError("expected NULL after IS", p.current().Value)
		}
		p.advance()

	case TokEOF:
		return nil, thingsctl.ParseError(
			fmt.Sprintf("unexpected end of expression after field %q, expected an operator", name), "")

	default:
		return nil, thingsctl.ParseError(
			fmt.Sprintf("expected an operator after field %q", name), p.current().Value)
	}

	cmp.Op = op
	if !field.Kind().Allows(op) {
		return nil, thingsctl.SemanticError(field.String(),
			fmt.Sprintf("operator %s is not valid for field %s", op, field))
	}

	return cmp, nil
}

// expectValue accepts a quoted literal or a bare identifier.
func (p *parser) expectValue() (string, error) {
	switch p.current().Kind {
	case TokString, TokIdent:
		value := p.current().Value
		p.advance()
		return value, nil
	case TokEOF:
		return "", thingsctl.ParseError("unexpected end of expression, expected a value", "")
	default:
		return "", thingsctl.ParseError("expected a value", p.current().Value)
	}
}

// parseValueList parses the parenthesized list of an IN operator:
// ('a', 'b', 'c'). At least one element is required.
func (p *parser) parseValueList() ([]string, error) {
	if !p.match(TokLParen) {
		return nil, thingsctl.ParseError("expected '(' after IN", p.current().Value)
	}
	p.advance()

	var values []string
	for {
		value, err := p.expectValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		if p.match(TokComma) {
			p.advance()
			continue
		}
		break
	}

	if !p.match(TokRParen) {
		return nil, thingsctl.ParseError("expected ')' to close IN list", p.current().Value)
	}
	p.advance()

	return values, nil
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}
