package lexer

import (
	"testing"

	"github.com/jlallas384/plc/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `class A : B {
	fn #foo(x: int): int { return x + 1; }
}
fn main(): int {
	let x: int = 5;
	x += 10;
	if (x >= 5 && x != 0) { return 1; }
	return 0;
}`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"class", token.CLASS},
		{"A", token.IDENT},
		{":", token.COLON},
		{"B", token.IDENT},
		{"{", token.LBRACE},
		{"fn", token.FN},
		{"#", token.HASH},
		{"foo", token.IDENT},
		{"(", token.LPAREN},
		{"x", token.IDENT},
		{":", token.COLON},
		{"int", token.KW_INT},
		{")", token.RPAREN},
		{":", token.COLON},
		{"int", token.KW_INT},
		{"{", token.LBRACE},
		{"return", token.RETURN},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"1", token.INT},
		{";", token.SEMI},
		{"}", token.RBRACE},
		{"}", token.RBRACE},
		{"fn", token.FN},
		{"main", token.IDENT},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{":", token.COLON},
		{"int", token.KW_INT},
		{"{", token.LBRACE},
		{"let", token.LET},
		{"x", token.IDENT},
		{":", token.COLON},
		{"int", token.KW_INT},
		{"=", token.ASSIGN},
		{"5", token.INT},
		{";", token.SEMI},
		{"x", token.IDENT},
		{"+=", token.PLUSEQ},
		{"10", token.INT},
		{";", token.SEMI},
		{"if", token.IF},
		{"(", token.LPAREN},
		{"x", token.IDENT},
		{">=", token.GTE},
		{"5", token.INT},
		{"&&", token.ANDAND},
		{"x", token.IDENT},
		{"!=", token.NEQ},
		{"0", token.INT},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"return", token.RETURN},
		{"1", token.INT},
		{";", token.SEMI},
		{"}", token.RBRACE},
		{"return", token.RETURN},
		{"0", token.INT},
		{";", token.SEMI},
		{"}", token.RBRACE},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOrOrIsDistinctFromAndAnd(t *testing.T) {
	l := New("a || b && c")
	want := []token.Kind{token.IDENT, token.OROR, token.IDENT, token.ANDAND, token.IDENT, token.EOF}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, tok.Kind)
		}
	}
}

func TestBracketsAndBracesAreDistinct(t *testing.T) {
	l := New("{[()]}")
	want := []token.Kind{
		token.LBRACE, token.LBRACKET, token.LPAREN, token.RPAREN, token.RBRACKET, token.RBRACE, token.EOF,
	}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, tok.Kind)
		}
	}
}

func TestStringEscape(t *testing.T) {
	l := New(`"hello \"world\""`)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}
	if tok.Literal != `"hello \"world\""` {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.NextToken()
	if tok.Kind != token.INVALID {
		t.Fatalf("expected INVALID, got %s", tok.Kind)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestFloatLiteral(t *testing.T) {
	l := New("3.14 5")
	tok := l.NextToken()
	if tok.Kind != token.FLOAT || tok.Literal != "3.14" {
		t.Fatalf("expected FLOAT(3.14), got %s(%q)", tok.Kind, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Kind != token.INT || tok.Literal != "5" {
		t.Fatalf("expected INT(5), got %s(%q)", tok.Kind, tok.Literal)
	}
}

func TestLineComment(t *testing.T) {
	l := New("1 // a comment\n2")
	tok := l.NextToken()
	if tok.Kind != token.INT || tok.Literal != "1" {
		t.Fatalf("expected INT(1), got %s(%q)", tok.Kind, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Kind != token.INT || tok.Literal != "2" {
		t.Fatalf("expected INT(2), got %s(%q)", tok.Kind, tok.Literal)
	}
}

func TestEOFPosition(t *testing.T) {
	l := New("  ")
	tok := l.NextToken()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
	if tok.Pos.Line != -1 || tok.Pos.Column != -1 {
		t.Fatalf("expected EOF position (-1,-1), got %s", tok.Pos)
	}
}

func TestIllegalAmpersand(t *testing.T) {
	l := New("a & b")
	l.NextToken() // a
	tok := l.NextToken()
	if tok.Kind != token.INVALID {
		t.Fatalf("expected INVALID for lone '&', got %s", tok.Kind)
	}
}
