package filter

import (
	"testing"

	"github.com/thingsctl/thingsctl/thingsctl"
)

func TestLexSimpleComparison(t *testing.T) {
	tokens, err := Lex("status = open")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Tokens: Ident(status), Eq, Ident(open), EOF
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens (including EOF), got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != TokIdent || tokens[0].Value != "status" {
		t.Errorf("expected Ident(status), got %v", tokens[0])
	}
	if tokens[1].Kind != TokEq {
		t.Errorf("expected Eq, got %v", tokens[1])
	}
	if tokens[2].Kind != TokIdent || tokens[2].Value != "open" {
		t.Errorf("expected Ident(open), got %v", tokens[2])
	}
	if tokens[3].Kind != TokEOF {
		t.Errorf("expected EOF, got %v", tokens[3])
	}
}

func TestLexString(t *testing.T) {
	tokens, err := Lex("name = 'hello world'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Kind != TokString || tokens[2].Value != "hello world" {
		t.Errorf("expected String(hello world), got %v", tokens[2])
	}
}

func TestLexEscapedQuote(t *testing.T) {
	tokens, err := Lex(`name = 'it\'s done'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Kind != TokString || tokens[2].Value != "it's done" {
		t.Errorf("expected String(it's done), got %v", tokens[2])
	}
}

func TestLexEscapedBackslash(t *testing.T) {
	tokens, err := Lex(`name = 'a\\b'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Value != `a\b` {
		t.Errorf("expected a\\b, got %q", tokens[2].Value)
	}
}

func TestLexNotEqualGreedy(t *testing.T) {
	tokens, err := Lex("status != 'open'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Kind != TokNeq {
		t.Errorf("expected Neq, got %v", tokens[1])
	}
}

func TestLexKeywordsCaseInsensitive(t *testing.T) {
	tokens, err := Lex("tags contains 'x' and status in ('open') or not name like '%a%' IS NULL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{
		TokIdent, TokContains, TokString,
		TokAnd,
		TokIdent, TokIn, TokLParen, TokString, TokRParen,
		TokOr, TokNot,
		TokIdent, TokLike, TokString,
		TokIs, TokNull,
		TokEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, tokens[i])
		}
	}
}

func TestLexParensAndCommas(t *testing.T) {
	tokens, err := Lex("status IN ('open', 'canceled')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := []TokenKind{TokIdent, TokIn, TokLParen, TokString, TokComma, TokString, TokRParen, TokEOF}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds), len(tokens), tokens)
	}
	for i, kind := range kinds {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, tokens[i])
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex("name = 'oops")
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	if !thingsctl.IsKind(err, thingsctl.ErrLex) {
		t.Errorf("expected lex error, got %v", err)
	}
}

func TestLexIllegalCharacter(t *testing.T) {
	_, err := Lex("status = open & tags CONTAINS 'x'")
	if err == nil {
		t.Fatal("expected error for stray '&'")
	}
	if !thingsctl.IsKind(err, thingsctl.ErrLex) {
		t.Errorf("expected lex error, got %v", err)
	}
}

func TestLexLoneBang(t *testing.T) {
	_, err := Lex("status ! open")
	if err == nil {
		t.Fatal("expected error for lone '!'")
	}
	if !thingsctl.IsKind(err, thingsctl.ErrLex) {
		t.Errorf("expected lex error, got %v", err)
	}
}

func TestLexTokenPositions(t *testing.T) {
	tokens, err := Lex("status = open")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos != 0 {
		t.Errorf("expected pos 0 for first token, got %d", tokens[0].Pos)
	}
	if tokens[1].Pos != 7 {
		t.Errorf("expected pos 7 for '=', got %d", tokens[1].Pos)
	}
	if tokens[2].Pos != 9 {
		t.Errorf("expected pos 9 for 'open', got %d", tokens[2].Pos)
	}
}
