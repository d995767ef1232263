package parser

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/token"
)

// parseExpr builds a flat ast.OpSeq by alternating operand and
// operator-symbol items (spec.md 4.2). It never resolves precedence;
// that is internal/resolve's job. The alternation stops as soon as two
// adjacent operand items would collide (i.e. the next primary starts
// while the last item was already an operand) — that boundary belongs
// to the caller (e.g. a statement terminator, or a call-argument
// comma).
func (p *Parser) parseExpr() ast.Expr {
	start := p.cur().Pos
	seq := &ast.OpSeq{}
	seq.Pos = start

	lastWasOperand := false
	for {
		if p.atEnd() {
			break
		}
		if p.cur().Kind == token.OPERATOR {
			op := p.cur()
			p.advance()
			seq.Items = append(seq.Items, ast.OpSeqItem{Op: op.Literal, OpPos: op.Pos})
			lastWasOperand = false
			continue
		}
		if p.startsPrimary() {
			if lastWasOperand {
				break
			}
			operand := p.parsePrimary()
			seq.Items = append(seq.Items, ast.OpSeqItem{Operand: operand})
			lastWasOperand = true
			continue
		}
		break
	}

	if len(seq.Items) == 0 {
		p.errorf(p.cur().Pos, "expected an expression")
		return seq
	}
	// A single bare operand collapses to itself; internal/resolve would
	// otherwise have to special-case a one-item OpSeq everywhere.
	if len(seq.Items) == 1 && !seq.Items[0].IsOperator() {
		return seq.Items[0].Operand
	}
	return seq
}

// startsPrimary reports whether the current token can begin a primary
// expression, without consuming it.
func (p *Parser) startsPrimary() bool {
	t := p.cur()
	switch t.Kind {
	case token.INT, token.FLOAT, token.STRING, token.IDENT:
		return true
	case token.KEYWORD:
		return t.Literal == "true" || t.Literal == "false"
	case token.PUNCT:
		return t.Literal == "("
	default:
		return false
	}
}

// parsePrimary parses one literal, identifier (with an optional call
// suffix), or parenthesized sub-expression.
func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.INT:
		p.advance()
		lit := &ast.IntegerLiteral{Raw: t.Literal}
		lit.Pos = t.Pos
		return lit
	case token.FLOAT:
		p.advance()
		lit := &ast.FloatLiteral{Raw: t.Literal}
		lit.Pos = t.Pos
		return lit
	case token.STRING:
		p.advance()
		lit := &ast.StringLiteral{Value: t.Literal}
		lit.Pos = t.Pos
		return lit
	case token.KEYWORD:
		if t.Literal == "true" || t.Literal == "false" {
			p.advance()
			lit := &ast.BooleanLiteral{Value: t.Literal == "true"}
			lit.Pos = t.Pos
			return lit
		}
	case token.IDENT:
		p.advance()
		id := &ast.Identifier{Name: t.Literal}
		id.Pos = t.Pos
		return p.parseCallSuffix(id)
	case token.PUNCT:
		if t.Literal == "(" {
			p.advance()
			inner := p.parseExpr()
			p.expectPunct(")")
			return p.parseCallSuffix(inner)
		}
	}

	p.errorf(t.Pos, "unexpected token %q", t.Literal)
	p.advance()
	bad := &ast.Identifier{Name: "<error>"}
	bad.Pos = t.Pos
	return bad
}

// parseCallSuffix wraps base in a CallExpr for every immediately
// following '(' argument list, supporting chained calls like `f()()`.
func (p *Parser) parseCallSuffix(base ast.Expr) ast.Expr {
	for p.isPunct("(") {
		start := p.cur().Pos
		p.advance()
		var args []ast.Expr
		if !p.isPunct(")") {
			for {
				args = append(args, p.parseExpr())
				if p.isPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		p.expectPunct(")")
		call := &ast.CallExpr{Callee: base, Args: args}
		call.Pos = start
		base = call
	}
	return base
}
