package codegen

import (
	"github.com/Pecco-314/pecco-lang/internal/ir"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// builtinBinaryOp implements spec.md 4.6's native-instruction fast
// path for binary operators: integer vs float arithmetic, signed
// integer compares, float ordered compares, and bitwise ops. Integer
// power has no native instruction and always falls back to a mangled
// operator call; float power likewise always calls the generic power
// intrinsic. "&&"/"||" are never looked up here: lowerBinary special-
// cases them structurally, the same way it special-cases assignment,
// so that the right operand is only evaluated when short-circuiting
// requires it (spec.md 7).
func builtinBinaryOp(symbol string, lt, rt types.Name) (ir.Op, ir.Type, bool) {
	if lt != rt {
		return "", 0, false
	}
	switch lt {
	case types.I32:
		if op, ok := intBinaryOps[symbol]; ok {
			return op, ir.I32, true
		}
		if op, ok := intCompareOps[symbol]; ok {
			return op, ir.I1, true
		}
	case types.F64:
		if op, ok := floatBinaryOps[symbol]; ok {
			return op, ir.F64, true
		}
		if op, ok := floatCompareOps[symbol]; ok {
			return op, ir.I1, true
		}
	case types.Bool:
		if op, ok := boolBinaryOps[symbol]; ok {
			return op, ir.I1, true
		}
	}
	return "", 0, false
}

func builtinUnaryOp(symbol string, t types.Name) (ir.Op, ir.Type, bool) {
	switch t {
	case types.I32:
		if symbol == "-" {
			return ir.OpNeg, ir.I32, true
		}
	case types.F64:
		if symbol == "-" {
			return ir.OpNeg, ir.F64, true
		}
	case types.Bool:
		if symbol == "!" {
			return ir.OpNot, ir.I1, true
		}
	}
	return "", 0, false
}

var intBinaryOps = map[string]ir.Op{
	"+": ir.OpAdd, "-": ir.OpSub, "*": ir.OpMul, "/": ir.OpDiv, "%": ir.OpMod,
	"&": ir.OpAnd, "|": ir.OpOr, "^": ir.OpXor, "<<": ir.OpShl, ">>": ir.OpShr,
}

var intCompareOps = map[string]ir.Op{
	"==": ir.OpCmpEq, "!=": ir.OpCmpNe, "<": ir.OpCmpLt, "<=": ir.OpCmpLe,
	">": ir.OpCmpGt, ">=": ir.OpCmpGe,
}

var floatBinaryOps = map[string]ir.Op{
	"+": ir.OpFAdd, "-": ir.OpFSub, "*": ir.OpFMul, "/": ir.OpFDiv,
}

var floatCompareOps = map[string]ir.Op{
	"==": ir.OpFCmpEq, "!=": ir.OpFCmpNe, "<": ir.OpFCmpLt, "<=": ir.OpFCmpLe,
	">": ir.OpFCmpGt, ">=": ir.OpFCmpGe,
}

var boolBinaryOps = map[string]ir.Op{
	"==": ir.OpCmpEq, "!=": ir.OpCmpNe,
}
