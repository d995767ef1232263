package parser

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/token"
)

// parseStatement dispatches on one keyword token to pick a production;
// otherwise falls back to an expression-statement (spec.md 4.2).
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.isKeyword("let"):
		return p.parseLet()
	case p.isKeyword("func"):
		return p.parseFuncDecl()
	case p.isKeyword("operator"):
		return p.parseOperatorDecl()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isPunct("{"):
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLet() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'let'

	name := p.cur()
	if name.Kind != token.IDENT {
		p.errorf(name.Pos, "expected identifier after 'let'")
		p.synchronize()
		return nil
	}
	p.advance()

	stmt := &ast.LetStmt{Name: name.Literal}
	stmt.Pos = start

	if p.isPunct(":") {
		p.advance()
		stmt.DeclaredType = p.expectType()
		stmt.HasType = true
	}

	if !p.expectOperator("=") {
		p.synchronize()
		return stmt
	}

	stmt.Init = p.parseExpr()

	if !p.expectPunct(";") {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) expectOperator(lit string) bool {
	if p.isOperator(lit) {
		p.advance()
		return true
	}
	p.errorf(p.prevEnd(), "expected %q", lit)
	return false
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.expectPunct("(")
	if !p.isPunct(")") {
		for {
			nameTok := p.cur()
			if nameTok.Kind != token.IDENT {
				p.errorf(nameTok.Pos, "expected parameter name")
				break
			}
			p.advance()
			param := ast.Param{Name: nameTok.Literal, Pos: nameTok.Pos}
			if p.isPunct(":") {
				p.advance()
				param.Type = p.expectType()
			} else {
				p.errorf(nameTok.Pos, "parameter %q is missing a required type annotation", nameTok.Literal)
			}
			params = append(params, param)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	p.expectPunct(")")
	return params
}

func (p *Parser) parseFuncDecl() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'func'

	name := p.cur()
	if name.Kind != token.IDENT {
		p.errorf(name.Pos, "expected function name")
		p.synchronize()
		return nil
	}
	p.advance()

	decl := &ast.FuncDecl{Name: name.Literal}
	decl.Pos = start
	decl.Params = p.parseParamList()

	if p.isPunct(":") {
		p.advance()
		decl.ReturnType = p.expectType()
		decl.HasReturn = true
	}

	if p.isPunct("{") {
		decl.Body = p.parseBlock().(*ast.BlockStmt)
	} else if !p.expectPunct(";") {
		p.synchronize()
	}
	return decl
}

func (p *Parser) parseOperatorDecl() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'operator'

	var pos ast.OperatorPosition
	switch {
	case p.isKeyword("prefix"):
		pos = ast.OpPrefix
		p.advance()
	case p.isKeyword("infix"):
		pos = ast.OpInfix
		p.advance()
	case p.isKeyword("postfix"):
		pos = ast.OpPostfix
		p.advance()
	default:
		p.errorf(p.cur().Pos, "expected 'prefix', 'infix', or 'postfix'")
	}

	symTok := p.cur()
	if symTok.Kind != token.OPERATOR {
		p.errorf(symTok.Pos, "expected an operator symbol")
		p.synchronize()
		return nil
	}
	p.advance()

	decl := &ast.OperatorDecl{Symbol: symTok.Literal, Position: pos}
	decl.Pos = start
	decl.Params = p.parseParamList()

	wantCount := 2
	if pos != ast.OpInfix {
		wantCount = 1
	}
	if len(decl.Params) != wantCount {
		p.errorf(start, "%s operator %q must declare exactly %d parameter(s), got %d",
			pos, decl.Symbol, wantCount, len(decl.Params))
	}

	if !p.expectPunct(":") {
		p.synchronize()
		return decl
	}
	decl.ReturnType = p.expectType()

	if p.isKeyword("prec") {
		if pos != ast.OpInfix {
			p.errorf(p.cur().Pos, "'prec' is only valid for infix operators")
		}
		p.advance()
		intTok := p.cur()
		if intTok.Kind != token.INT {
			p.errorf(intTok.Pos, "expected an integer precedence")
		} else {
			decl.Precedence = parseIntLiteral(intTok.Literal)
			p.advance()
		}
		decl.Assoc = ast.AssocLeft
		if p.isKeyword("assoc_left") {
			decl.Assoc = ast.AssocLeft
			p.advance()
		} else if p.isKeyword("assoc_right") {
			decl.Assoc = ast.AssocRight
			p.advance()
		}
	} else if pos == ast.OpInfix {
		p.errorf(p.prevEnd(), "infix operator %q requires a 'prec' clause", decl.Symbol)
	}

	if p.isPunct("{") {
		decl.Body = p.parseBlock().(*ast.BlockStmt)
	} else if !p.expectPunct(";") {
		p.synchronize()
	}
	return decl
}

func parseIntLiteral(raw string) int {
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'if'

	stmt := &ast.IfStmt{}
	stmt.Pos = start
	stmt.Cond = p.parseExpr()

	if p.isPunct("{") {
		stmt.Then = p.parseBlock().(*ast.BlockStmt)
	} else {
		p.errorf(p.prevEnd(), "expected '{' to start if-block")
	}

	if p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			stmt.Else = p.parseIf()
		} else if p.isPunct("{") {
			stmt.Else = p.parseBlock()
		} else {
			p.errorf(p.cur().Pos, "expected 'if' or '{' after 'else'")
		}
	}
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'return'

	stmt := &ast.ReturnStmt{}
	stmt.Pos = start
	if !p.isPunct(";") {
		stmt.Value = p.parseExpr()
	}
	if !p.expectPunct(";") {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.cur().Pos
	p.advance() // 'while'

	stmt := &ast.WhileStmt{}
	stmt.Pos = start
	stmt.Cond = p.parseExpr()

	if p.isPunct("{") {
		stmt.Body = p.parseBlock().(*ast.BlockStmt)
	} else {
		p.errorf(p.prevEnd(), "expected '{' to start while-block")
	}
	return stmt
}

func (p *Parser) parseBlock() ast.Stmt {
	start := p.cur().Pos
	p.expectPunct("{")

	block := &ast.BlockStmt{}
	block.Pos = start

	for !p.isPunct("}") && !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.expectPunct("}")
	return block
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.cur().Pos
	x := p.parseExpr()
	stmt := &ast.ExprStmt{X: x}
	stmt.Pos = start
	if !p.expectPunct(";") {
		p.synchronize()
	}
	return stmt
}
