// Package token defines the lexical tokens produced by internal/lexer
// and consumed by internal/parser. Tokens are immutable once created;
// they exist only between lexing and parsing and may be dropped once
// the AST is built.
package token

import "fmt"

// Kind identifies the category a Token belongs to.
type Kind int

const (
	// Special tokens.
	ILLEGAL Kind = iota // unexpected or malformed character sequence
	EOF                 // end of input

	// Literals and names.
	INT        // integer literal, raw digit string (numeric parse deferred)
	FLOAT      // floating literal, raw text
	STRING     // decoded string literal, escapes resolved
	IDENT      // identifier
	KEYWORD    // reserved word
	OPERATOR   // operator symbol, e.g. +, ==, &&, ->
	PUNCT      // single-character punctuation: ( ) { } [ ] , ; :
	COMMENT    // '#' to end of line
)

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

var kindNames = [...]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	IDENT:    "IDENT",
	KEYWORD:  "KEYWORD",
	OPERATOR: "OPERATOR",
	PUNCT:    "PUNCT",
	COMMENT:  "COMMENT",
}

// Keywords is the closed set of reserved words. Lexer identifies an
// identifier as a keyword by membership in this map; every value is
// true.
var Keywords = map[string]bool{
	"let": true, "func": true, "if": true, "else": true, "return": true,
	"while": true, "true": true, "false": true, "operator": true,
	"prefix": true, "postfix": true, "infix": true, "prec": true,
	"assoc_left": true, "assoc_right": true,
}

// Position is a (line, start column, end column) triple attached to
// every token and AST node. Columns are 1-based rune offsets within
// the line. A zero-value Position is "unknown" and IsValid reports
// false for it.
type Position struct {
	Line        int
	StartColumn int
	EndColumn   int
}

// IsValid reports whether p refers to a real source location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.StartColumn > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	if p.EndColumn > p.StartColumn {
		return fmt.Sprintf("%d:%d-%d", p.Line, p.StartColumn, p.EndColumn)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.StartColumn)
}

// Token is a single lexical unit: its kind, the raw source text it
// came from, its position, and — for ILLEGAL tokens produced from a
// bad string escape — the offset of the offending character within
// the token's own span, used to place a precise caret in diagnostics.
type Token struct {
	Kind        Kind
	Literal     string
	Pos         Position
	ErrorOffset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Literal, t.Pos)
}

// IsKeyword reports whether literal (case-sensitive; Pecco keywords
// are all lowercase) names a reserved word.
func IsKeyword(literal string) bool {
	return Keywords[literal]
}
