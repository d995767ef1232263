package lexer

import (
	"testing"

	"github.com/Pecco-314/pecco-lang/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let x = 5;
	x = x + 10;
	`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"let", token.KEYWORD},
		{"x", token.IDENT},
		{"=", token.OPERATOR},
		{"5", token.INT},
		{";", token.PUNCT},
		{"x", token.IDENT},
		{"=", token.OPERATOR},
		{"x", token.IDENT},
		{"+", token.OPERATOR},
		{"10", token.INT},
		{";", token.PUNCT},
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

func TestKeywords(t *testing.T) {
	input := `func operator prefix infix postfix prec assoc_left assoc_right if else return while true false let`

	want := []string{
		"func", "operator", "prefix", "infix", "postfix", "prec",
		"assoc_left", "assoc_right", "if", "else", "return", "while",
		"true", "false", "let",
	}

	toks, errs := Lex(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
	if len(toks) != len(want)+1 {
		t.Fatalf("expected %d tokens, got %d", len(want)+1, len(toks))
	}
	for i, lit := range want {
		if toks[i].Kind != token.KEYWORD {
			t.Fatalf("token %d: expected KEYWORD, got %s (%q)", i, toks[i].Kind, toks[i].Literal)
		}
		if toks[i].Literal != lit {
			t.Fatalf("token %d: expected %q, got %q", i, lit, toks[i].Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"123", token.INT},
		{"0", token.INT},
		{"1.5", token.FLOAT},
		{"1e10", token.FLOAT},
		{"1e-10", token.FLOAT},
		{"1.5e+3", token.FLOAT},
	}
	for _, tt := range tests {
		toks, errs := Lex(tt.input)
		if len(errs) != 0 {
			t.Fatalf("input %q: unexpected errors: %v", tt.input, errs)
		}
		if toks[0].Kind != tt.kind {
			t.Fatalf("input %q: expected kind %s, got %s", tt.input, tt.kind, toks[0].Kind)
		}
		if toks[0].Literal != tt.input {
			t.Fatalf("input %q: expected literal %q, got %q", tt.input, tt.input, toks[0].Literal)
		}
	}
}

func TestFalseExponentBacktracks(t *testing.T) {
	// "1e" with no following digits isn't a valid exponent: the lexer
	// must backtrack and hand "e" back as a separate identifier.
	toks, errs := Lex("1e")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.INT || toks[0].Literal != "1" {
		t.Fatalf("expected INT(1), got %s(%q)", toks[0].Kind, toks[0].Literal)
	}
	if toks[1].Kind != token.IDENT || toks[1].Literal != "e" {
		t.Fatalf("expected IDENT(e), got %s(%q)", toks[1].Kind, toks[1].Literal)
	}
}

func TestStringLiteral(t *testing.T) {
	toks, errs := Lex(`"hello\nworld"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	if toks[0].Literal != "hello\nworld" {
		t.Fatalf("expected decoded escape, got %q", toks[0].Literal)
	}
}

func TestStringLiteralBadEscapeRecordsError(t *testing.T) {
	_, errs := Lex(`"bad \q escape"`)
	if len(errs) == 0 {
		t.Fatalf("expected a lexer error for an unknown escape")
	}
}

func TestOperatorMaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"**", []string{"**"}},
		{"<<", []string{"<<"}},
		{">>", []string{">>"}},
		{"&&", []string{"&&"}},
		{"||", []string{"||"}},
		{"==", []string{"=="}},
		{"!=", []string{"!="}},
		{"<=", []string{"<="}},
		{">=", []string{">="}},
		{"+=", []string{"+="}},
		{"++", []string{"++"}},
		{"+ +", []string{"+", "+"}},
	}
	for _, tt := range tests {
		toks, errs := Lex(tt.input)
		if len(errs) != 0 {
			t.Fatalf("input %q: unexpected errors: %v", tt.input, errs)
		}
		var got []string
		for _, tok := range toks {
			if tok.Kind == token.OPERATOR {
				got = append(got, tok.Literal)
			}
		}
		if len(got) != len(tt.want) {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, got)
			}
		}
	}
}

func TestCommentsSkippedByDefault(t *testing.T) {
	toks, errs := Lex("let x = 1; # a trailing comment\nlet y = 2;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, tok := range toks {
		if tok.Kind == token.COMMENT {
			t.Fatalf("expected comments to be dropped by default, found one")
		}
	}
}

func TestCommentsPreservedWithOption(t *testing.T) {
	toks, _ := Lex("let x = 1; # hi\n", WithPreserveComments(true))
	found := false
	for _, tok := range toks {
		if tok.Kind == token.COMMENT {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a COMMENT token with WithPreserveComments(true)")
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks, _ := Lex("let x = 1 @ 2;")
	foundIllegal := false
	for _, tok := range toks {
		if tok.Kind == token.ILLEGAL {
			foundIllegal = true
		}
	}
	if !foundIllegal {
		t.Fatalf("expected an ILLEGAL token for '@'")
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	toks, _ := Lex("let x\n= 1;")
	// "let" at line 1 col 1, "x" at line 1 col 5, "=" at line 2 col 1.
	if toks[0].Pos.Line != 1 || toks[0].Pos.StartColumn != 1 {
		t.Fatalf("expected 'let' at 1:1, got %s", toks[0].Pos)
	}
	if toks[1].Pos.Line != 1 || toks[1].Pos.StartColumn != 5 {
		t.Fatalf("expected 'x' at 1:5, got %s", toks[1].Pos)
	}
	if toks[2].Pos.Line != 2 || toks[2].Pos.StartColumn != 1 {
		t.Fatalf("expected '=' at 2:1, got %s", toks[2].Pos)
	}
}

func TestSimpleProgram(t *testing.T) {
	input := `
	func add(a : i32, b : i32) : i32 {
		return a + b;
	}
	`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"func", token.KEYWORD},
		{"add", token.IDENT},
		{"(", token.PUNCT},
		{"a", token.IDENT},
		{":", token.PUNCT},
		{"i32", token.IDENT},
		{",", token.PUNCT},
		{"b", token.IDENT},
		{":", token.PUNCT},
		{"i32", token.IDENT},
		{")", token.PUNCT},
		{":", token.PUNCT},
		{"i32", token.IDENT},
		{"{", token.PUNCT},
		{"return", token.KEYWORD},
		{"a", token.IDENT},
		{"+", token.OPERATOR},
		{"b", token.IDENT},
		{";", token.PUNCT},
		{"}", token.PUNCT},
		{"", token.EOF},
	}

	toks, errs := Lex(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for i, tt := range tests {
		if toks[i].Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedKind, toks[i].Kind, toks[i].Literal)
		}
		if toks[i].Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, toks[i].Literal)
		}
	}
}
