package codegen

import (
	"fmt"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/ir"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

var assignOps = map[string]ir.Op{
	"+=": ir.OpAdd, "-=": ir.OpSub, "*=": ir.OpMul, "/=": ir.OpDiv, "%=": ir.OpMod,
}

var floatAssignOps = map[string]ir.Op{
	"+=": ir.OpFAdd, "-=": ir.OpFSub, "*=": ir.OpFMul, "/=": ir.OpFDiv,
}

func (g *Generator) lowerExpr(e ast.Expr) ir.Value {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return ir.ConstVal(n.Raw, ir.I32)
	case *ast.FloatLiteral:
		return ir.ConstVal(n.Raw, ir.F64)
	case *ast.BooleanLiteral:
		lit := "0"
		if n.Value {
			lit = "1"
		}
		return ir.ConstVal(lit, ir.I1)
	case *ast.StringLiteral:
		return g.lowerStringLiteral(n.Value)
	case *ast.Identifier:
		return g.lowerIdentifier(n)
	case *ast.BinaryExpr:
		return g.lowerBinary(n)
	case *ast.UnaryExpr:
		return g.lowerUnary(n)
	case *ast.CallExpr:
		return g.lowerCall(n)
	default:
		g.errorf(e.Position(), "internal error: unsupported expression %T reached code generation", e)
		return ir.ConstVal("0", ir.I32)
	}
}

func (g *Generator) lowerStringLiteral(value string) ir.Value {
	name, ok := g.stringConsts[value]
	if !ok {
		name = fmt.Sprintf("str.%d", len(g.stringConsts))
		g.stringConsts[value] = name
		g.module.Globals = append(g.module.Globals, &ir.Global{Name: name, Value: value})
	}
	return ir.GlobalVal(name, ir.Ptr)
}

func (g *Generator) lowerIdentifier(n *ast.Identifier) ir.Value {
	sl, ok := g.curScope.lookup(n.Name)
	if !ok {
		g.errorf(n.Pos, "undefined variable %q", n.Name)
		return ir.ConstVal("0", mapType(n.Type()))
	}
	result := g.builder.FreshValue()
	g.curBlock.Append(ir.Instruction{Result: result, ResultType: sl.value.Type, Op: ir.OpLoad, Args: []ir.Value{sl.value}})
	return ir.Reg(result, sl.value.Type)
}

// lowerBinary handles assignment and the short-circuit logical
// operators structurally, then falls back to the built-in-instruction
// fast path, then to a call against a user-declared operator overload
// (spec.md 4.6).
func (g *Generator) lowerBinary(n *ast.BinaryExpr) ir.Value {
	if n.Op == "=" || isCompoundAssign(n.Op) {
		return g.lowerAssign(n)
	}
	if n.Op == "&&" || n.Op == "||" {
		return g.lowerShortCircuit(n)
	}

	lt, rt := n.Left.Type(), n.Right.Type()
	lv := g.lowerExpr(n.Left)
	rv := g.lowerExpr(n.Right)

	if op, ty, ok := builtinBinaryOp(n.Op, lt, rt); ok {
		result := g.builder.FreshValue()
		g.curBlock.Append(ir.Instruction{Result: result, ResultType: ty, Op: op, Args: []ir.Value{lv, rv}})
		return ir.Reg(result, ty)
	}

	return g.lowerOperatorCall(n.Op, ast.OpInfix, n.OpPos, []types.Name{lt, rt}, []ir.Value{lv, rv}, n.Type())
}

// lowerShortCircuit implements spec.md 7's short-circuit requirement
// for "&&"/"||": the right operand is lowered into its own block,
// reached only when the left operand doesn't already decide the
// result, with the chosen value threaded through a stack slot since
// the two predecessor blocks reaching the merge have no other way to
// hand a value forward (spec.md 4.6, no cross-block phi nodes).
func (g *Generator) lowerShortCircuit(n *ast.BinaryExpr) ir.Value {
	lv := g.lowerExpr(n.Left)

	slotName := g.builder.FreshValue()
	g.curBlock.Append(ir.Instruction{Result: slotName, ResultType: ir.I1, Op: ir.OpAlloca})
	g.curBlock.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{lv, ir.Reg(slotName, ir.I1)}})
	slot := ir.Reg(slotName, ir.I1)

	rhsBlock := g.newBlock("sc.rhs")
	endBlock := g.newBlock("sc.end")

	trueTarget, falseTarget := endBlock.Label, rhsBlock.Label
	if n.Op == "&&" {
		trueTarget, falseTarget = rhsBlock.Label, endBlock.Label
	}
	g.curBlock.Append(ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{lv}, Targets: []string{trueTarget, falseTarget}})

	g.curBlock = rhsBlock
	rv := g.lowerExpr(n.Right)
	if !g.curBlock.Terminated() {
		g.curBlock.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{rv, slot}})
		g.curBlock.Append(ir.Instruction{Op: ir.OpBr, Targets: []string{endBlock.Label}})
	}

	g.curBlock = endBlock
	result := g.builder.FreshValue()
	g.curBlock.Append(ir.Instruction{Result: result, ResultType: ir.I1, Op: ir.OpLoad, Args: []ir.Value{slot}})
	return ir.Reg(result, ir.I1)
}

func isCompoundAssign(op string) bool {
	switch op {
	case "+=", "-=", "*=", "/=", "%=":
		return true
	default:
		return false
	}
}

func (g *Generator) lowerAssign(n *ast.BinaryExpr) ir.Value {
	id, ok := n.Left.(*ast.Identifier)
	if !ok {
		g.errorf(n.OpPos, "assignment target must be an identifier")
		return g.lowerExpr(n.Right)
	}
	sl, ok := g.curScope.lookup(id.Name)
	if !ok {
		g.errorf(id.Pos, "undefined variable %q", id.Name)
		return g.lowerExpr(n.Right)
	}

	rhs := g.lowerExpr(n.Right)
	newVal := rhs
	if n.Op != "=" {
		cur := g.builder.FreshValue()
		g.curBlock.Append(ir.Instruction{Result: cur, ResultType: sl.value.Type, Op: ir.OpLoad, Args: []ir.Value{sl.value}})
		op := assignOps[n.Op]
		if sl.value.Type == ir.F64 {
			op = floatAssignOps[n.Op]
		}
		result := g.builder.FreshValue()
		g.curBlock.Append(ir.Instruction{Result: result, ResultType: sl.value.Type, Op: op, Args: []ir.Value{ir.Reg(cur, sl.value.Type), rhs}})
		newVal = ir.Reg(result, sl.value.Type)
	}
	g.curBlock.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{newVal, sl.value}})
	return newVal
}

func (g *Generator) lowerUnary(n *ast.UnaryExpr) ir.Value {
	ot := n.Operand.Type()
	ov := g.lowerExpr(n.Operand)

	pos := ast.OpPrefix
	if n.Position == ast.Postfix {
		pos = ast.OpPostfix
	}
	if op, ty, ok := builtinUnaryOp(n.Op, ot); ok {
		result := g.builder.FreshValue()
		g.curBlock.Append(ir.Instruction{Result: result, ResultType: ty, Op: op, Args: []ir.Value{ov}})
		return ir.Reg(result, ty)
	}
	return g.lowerOperatorCall(n.Op, pos, n.OpPos, []types.Name{ot}, []ir.Value{ov}, n.Type())
}

// lowerOperatorCall is the fallback path: look up the operator by
// symbol and inferred operand types, and emit a call to its mangled
// function symbol (spec.md 4.6). Integer power has no built-in
// instruction and always takes this path; float power likewise always
// calls the generic power intrinsic declared alongside the other
// prelude operators.
func (g *Generator) lowerOperatorCall(symbol string, pos ast.OperatorPosition, opPos token.Position, paramTypes []types.Name, args []ir.Value, resultType types.Name) ir.Value {
	for _, desc := range g.table.LookupOperator(symbol, pos) {
		if types.SameTuple(desc.ParamTypes, paramTypes) {
			irName := g.opIRName[operatorKey(symbol, pos, desc.ParamTypes)]
			retTy := mapType(desc.ReturnType)
			if retTy == ir.Void {
				g.curBlock.Append(ir.Instruction{Op: ir.OpCall, Callee: irName, Args: args})
				return ir.Value{}
			}
			result := g.builder.FreshValue()
			g.curBlock.Append(ir.Instruction{Result: result, ResultType: retTy, Op: ir.OpCall, Callee: irName, Args: args})
			return ir.Reg(result, retTy)
		}
	}
	g.errorf(opPos, "no overload of operator %q accepts the given operand types", symbol)
	return ir.ConstVal("0", mapType(resultType))
}

func (g *Generator) lowerCall(n *ast.CallExpr) ir.Value {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		g.errorf(n.Position(), "internal error: call target is not an identifier")
		return ir.ConstVal("0", mapType(n.Type()))
	}

	argTypes := make([]types.Name, len(n.Args))
	argVals := make([]ir.Value, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = a.Type()
		argVals[i] = g.lowerExpr(a)
	}

	overloads := g.table.LookupFunction(id.Name)
	var chosen *string
	for _, sig := range overloads {
		if types.SameTuple(sig.ParamTypes, argTypes) {
			irName := g.funcIRName[signatureKey(id.Name, sig.ParamTypes)]
			chosen = &irName
			if mapType(sig.ReturnType) == ir.Void {
				g.curBlock.Append(ir.Instruction{Op: ir.OpCall, Callee: irName, Args: argVals})
				return ir.Value{}
			}
			result := g.builder.FreshValue()
			g.curBlock.Append(ir.Instruction{Result: result, ResultType: mapType(sig.ReturnType), Op: ir.OpCall, Callee: irName, Args: argVals})
			return ir.Reg(result, mapType(sig.ReturnType))
		}
	}
	if chosen == nil {
		g.errorf(n.Position(), "undefined function %q for the given argument types", id.Name)
	}
	return ir.ConstVal("0", mapType(n.Type()))
}
