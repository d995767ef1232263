package codegen

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/ir"
)

func (g *Generator) lowerBlockStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		g.lowerStmt(s)
	}
}

func (g *Generator) lowerStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.LetStmt:
		g.lowerLet(n)
	case *ast.IfStmt:
		g.lowerIf(n)
	case *ast.WhileStmt:
		g.lowerWhile(n)
	case *ast.ReturnStmt:
		g.lowerReturn(n)
	case *ast.ExprStmt:
		g.lowerExpr(n.X)
	case *ast.BlockStmt:
		saved := g.curScope
		g.curScope = newGenScope(saved)
		g.lowerBlockStmts(n.Stmts)
		g.curScope = saved
	case *ast.FuncDecl, *ast.OperatorDecl:
		// Nested function/operator declarations never reach here: the
		// symbol-table builder rejects any declaration inside a body,
		// and defineEntry filters top-level ones out of the synthetic
		// entry body.
	}
}

func (g *Generator) lowerLet(n *ast.LetStmt) {
	declTy := n.DeclaredType
	if n.Init != nil {
		declTy = n.Init.Type()
	}
	ty := mapType(declTy)
	var val ir.Value
	if n.Init != nil {
		val = g.lowerExpr(n.Init)
	} else {
		val = zeroValue(ty)
	}
	slotName := g.builder.FreshValue()
	g.curBlock.Append(ir.Instruction{Result: slotName, ResultType: ty, Op: ir.OpAlloca})
	g.curBlock.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{val, ir.Reg(slotName, ty)}})
	g.curScope.define(n.Name, slot{value: ir.Reg(slotName, ty)})
}

func (g *Generator) lowerReturn(n *ast.ReturnStmt) {
	if n.Value == nil {
		g.curBlock.Append(ir.Instruction{Op: ir.OpRetVoid})
		return
	}
	v := g.lowerExpr(n.Value)
	g.curBlock.Append(ir.Instruction{Op: ir.OpRet, Args: []ir.Value{v}})
}

// lowerIf implements spec.md 4.6: branch to a then-block, optionally an
// else-block, both falling through to a shared merge block unless they
// already end in a terminator.
func (g *Generator) lowerIf(n *ast.IfStmt) {
	cond := g.lowerExpr(n.Cond)

	thenBlock := g.newBlock("if.then")
	var elseBlock, mergeBlock *ir.Block
	if n.Else != nil {
		elseBlock = g.newBlock("if.else")
	}
	mergeBlock = g.newBlock("if.end")

	elseTarget := mergeBlock.Label
	if elseBlock != nil {
		elseTarget = elseBlock.Label
	}
	g.curBlock.Append(ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cond}, Targets: []string{thenBlock.Label, elseTarget}})

	g.curBlock = thenBlock
	g.lowerStmt(n.Then)
	if !g.curBlock.Terminated() {
		g.curBlock.Append(ir.Instruction{Op: ir.OpBr, Targets: []string{mergeBlock.Label}})
	}

	if elseBlock != nil {
		g.curBlock = elseBlock
		g.lowerStmt(n.Else)
		if !g.curBlock.Terminated() {
			g.curBlock.Append(ir.Instruction{Op: ir.OpBr, Targets: []string{mergeBlock.Label}})
		}
	}

	g.curBlock = mergeBlock
}

// lowerWhile implements spec.md 4.6: condition/body/end blocks, with
// the body unconditionally branching back to the condition block.
func (g *Generator) lowerWhile(n *ast.WhileStmt) {
	condBlock := g.newBlock("while.cond")
	bodyBlock := g.newBlock("while.body")
	endBlock := g.newBlock("while.end")

	if !g.curBlock.Terminated() {
		g.curBlock.Append(ir.Instruction{Op: ir.OpBr, Targets: []string{condBlock.Label}})
	}

	g.curBlock = condBlock
	cond := g.lowerExpr(n.Cond)
	g.curBlock.Append(ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cond}, Targets: []string{bodyBlock.Label, endBlock.Label}})

	g.curBlock = bodyBlock
	g.lowerStmt(n.Body)
	if !g.curBlock.Terminated() {
		g.curBlock.Append(ir.Instruction{Op: ir.OpBr, Targets: []string{condBlock.Label}})
	}

	g.curBlock = endBlock
}
