package codegen

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/ir"
)

func (g *Generator) defineFunctions() {
	for _, name := range g.sortedFunctionNames() {
		for _, sig := range g.table.Functions[name] {
			if sig.Decl == nil || sig.Decl.Body == nil {
				continue
			}
			irName := g.funcIRName[signatureKey(name, sig.ParamTypes)]
			fn := g.findFunction(irName)
			g.lowerBody(fn, sig.Decl.Params, sig.Decl.Body, mapType(sig.ReturnType))
		}
	}
}

func (g *Generator) defineOperators() {
	for _, sym := range g.sortedOperatorSymbols() {
		for _, desc := range g.table.Operators[sym] {
			if desc.Decl == nil || desc.Decl.Body == nil {
				continue
			}
			irName := g.opIRName[operatorKey(sym, desc.Position, desc.ParamTypes)]
			fn := g.findFunction(irName)
			g.lowerBody(fn, desc.Decl.Params, desc.Decl.Body, mapType(desc.ReturnType))
		}
	}
}

// defineEntry implements module-shape step 3: a synthetic function
// whose body is every top-level statement that is not a function or
// operator declaration, returning a zero integer if it falls off the
// end.
func (g *Generator) defineEntry(userProg *ast.Program) {
	var body []ast.Stmt
	for _, s := range userProg.Stmts {
		switch s.(type) {
		case *ast.FuncDecl, *ast.OperatorDecl:
			continue
		default:
			body = append(body, s)
		}
	}
	block := ast.BlockStmt{Stmts: body}

	fn := &ir.Function{Name: EntryFunctionName, ReturnType: ir.I32}
	g.module.Functions = append(g.module.Functions, fn)
	g.lowerBody(fn, nil, &block, ir.I32)
}

// lowerBody implements module-shape step 4: an entry block allocating
// one stack slot per parameter, followed by the lowered statement body.
func (g *Generator) lowerBody(fn *ir.Function, params []ast.Param, body *ast.BlockStmt, retTy ir.Type) {
	g.builder = ir.NewBuilder()
	entry := &ir.Block{Label: "entry"}
	fn.Blocks = []*ir.Block{entry}
	g.curBlock = entry
	g.curScope = newGenScope(nil)
	g.curRetTy = retTy

	for i, p := range params {
		pt := mapType(p.Type)
		slotName := g.builder.FreshValue()
		g.curBlock.Append(ir.Instruction{Result: slotName, ResultType: pt, Op: ir.OpAlloca})
		incoming := fn.Params[i]
		g.curBlock.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Reg(incoming.Name, pt), ir.Reg(slotName, pt)}})
		g.curScope.define(p.Name, slot{value: ir.Reg(slotName, pt)})
	}

	g.currentFunc = fn
	g.lowerBlockStmts(body.Stmts)

	if !g.curBlock.Terminated() {
		if retTy == ir.Void {
			g.curBlock.Append(ir.Instruction{Op: ir.OpRetVoid})
		} else {
			g.curBlock.Append(ir.Instruction{Op: ir.OpRet, Args: []ir.Value{zeroValue(retTy)}})
		}
	}
}

func zeroValue(t ir.Type) ir.Value {
	switch t {
	case ir.F64:
		return ir.ConstVal("0.0", t)
	case ir.I1:
		return ir.ConstVal("0", t)
	case ir.Ptr:
		return ir.ConstVal("null", t)
	default:
		return ir.ConstVal("0", t)
	}
}

// newBlock allocates a fresh block and appends it to the function
// currently being lowered.
func (g *Generator) newBlock(hint string) *ir.Block {
	b := g.builder.FreshBlock(hint)
	g.currentFunc.Blocks = append(g.currentFunc.Blocks, b)
	return b
}
