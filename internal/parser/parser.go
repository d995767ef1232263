// Package parser implements Pecco's recursive-descent parser. It does
// NOT resolve operator precedence: expressions are parsed into flat
// ast.OpSeq nodes (spec.md 4.2), left for internal/resolve to turn
// into binary/unary trees.
package parser

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Parser consumes a materialized token slice (comments included) and
// produces a Program, recording diagnostics as it goes instead of
// aborting on the first syntax error (spec.md 4.2, 7).
type Parser struct {
	path   string
	toks   []token.Token
	pos    int
	diags  diag.List
}

// New creates a Parser over a token stream. toks is expected to end in
// an EOF token, as produced by lexer.Lex.
func New(path string, toks []token.Token) *Parser {
	return &Parser{path: path, toks: toks}
}

// Diagnostics returns the diagnostics recorded while parsing.
func (p *Parser) Diagnostics() *diag.List { return &p.diags }

// ParseProgram parses the whole token stream into a Program. Parsing
// always returns a (possibly partial) Program; callers should check
// Diagnostics().HasErrors() to decide whether to continue the
// pipeline.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		if p.cur().Kind == token.EOF {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) cur() token.Token {
	p.skipComments()
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) skipComments() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.COMMENT {
		p.pos++
	}
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos
	skipped := 0
	for skipped <= n && idx < len(p.toks) {
		if p.toks[idx].Kind == token.COMMENT {
			idx++
			continue
		}
		if skipped == n {
			return p.toks[idx]
		}
		skipped++
		idx++
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) isKeyword(lit string) bool {
	t := p.cur()
	return t.Kind == token.KEYWORD && t.Literal == lit
}

func (p *Parser) isPunct(lit string) bool {
	t := p.cur()
	return t.Kind == token.PUNCT && t.Literal == lit
}

func (p *Parser) isOperator(lit string) bool {
	t := p.cur()
	return t.Kind == token.OPERATOR && t.Literal == lit
}

// prevEnd returns the position to anchor a "missing X" error at: the
// end-column of the previous non-comment token, per spec.md 4.2's
// requirement that these errors stay visually anchored to the actual
// defect rather than pointing at whatever follows.
func (p *Parser) prevEnd() token.Position {
	idx := p.pos - 1
	for idx >= 0 && p.toks[idx].Kind == token.COMMENT {
		idx--
	}
	if idx < 0 {
		return token.Position{Line: 1, StartColumn: 1, EndColumn: 1}
	}
	prev := p.toks[idx]
	col := prev.Pos.EndColumn
	if col < prev.Pos.StartColumn {
		col = prev.Pos.StartColumn
	}
	return token.Position{Line: prev.Pos.Line, StartColumn: col, EndColumn: col}
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.diags.Addf(diag.Parser, p.path, pos, format, args...)
}

// expectPunct consumes a punctuation token of the given literal, or
// records a "missing X" error anchored at the previous token's end.
func (p *Parser) expectPunct(lit string) bool {
	if p.isPunct(lit) {
		p.advance()
		return true
	}
	p.errorf(p.prevEnd(), "expected %q", lit)
	return false
}

func (p *Parser) expectKeyword(lit string) bool {
	if p.isKeyword(lit) {
		p.advance()
		return true
	}
	p.errorf(p.prevEnd(), "expected keyword %q", lit)
	return false
}

// expectType parses a type annotation after a ':' that the caller has
// already required to be present; it consumes one IDENT token naming
// one of the five built-in type names.
func (p *Parser) expectType() types.Name {
	t := p.cur()
	if t.Kind != token.IDENT {
		p.errorf(t.Pos, "expected a type name, got %q", t.Literal)
		return types.Unknown
	}
	name := types.Name(t.Literal)
	if !types.Valid(name) {
		p.errorf(t.Pos, "unknown type %q", t.Literal)
	}
	p.advance()
	return name
}

// synchronize implements spec.md 4.2's panic-mode recovery: skip
// tokens until a ';' (consumed), a '}' (left for the enclosing block
// to consume), or a statement-starter keyword.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.isPunct(";") {
			p.advance()
			return
		}
		if p.isPunct("}") {
			return
		}
		if t := p.cur(); t.Kind == token.KEYWORD && isStmtStarter(t.Literal) {
			return
		}
		p.advance()
	}
}

func isStmtStarter(lit string) bool {
	switch lit {
	case "let", "func", "operator", "if", "return", "while":
		return true
	default:
		return false
	}
}
