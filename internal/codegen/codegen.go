// Package codegen lowers a resolved, type-checked AST plus its symbol
// table into an internal/ir module (spec.md 4.6). It plays the role
// the teacher's internal/bytecode compiler plays for DWScript (AST to
// executable form), adapted from a stack-bytecode VM target to an SSA
// module handed to an external backend.
package codegen

import (
	"fmt"
	"sort"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/ir"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// EntryFunctionName is the fixed name of the synthetic function whose
// body is every top-level statement that is not a function or operator
// declaration (spec.md 4.6, module shape step 3).
const EntryFunctionName = "pecco_program_entry"

// Generator lowers one compilation unit's AST into an ir.Module.
type Generator struct {
	table *symbols.Table
	path  string
	diags diag.List

	module       *ir.Module
	stringConsts map[string]string // literal value -> global name
	funcIRName   map[string]string // signatureKey -> mangled IR function name
	opIRName     map[string]string // signatureKey -> mangled IR function name

	builder     *ir.Builder
	curBlock    *ir.Block
	curScope    *genScope
	curRetTy    ir.Type
	currentFunc *ir.Function
}

// New creates a Generator targeting table.
func New(table *symbols.Table, path string) *Generator {
	return &Generator{
		table:        table,
		path:         path,
		stringConsts: make(map[string]string),
		funcIRName:   make(map[string]string),
		opIRName:     make(map[string]string),
	}
}

// Diagnostics returns the diagnostics recorded while generating.
func (g *Generator) Diagnostics() *diag.List { return &g.diags }

func (g *Generator) errorf(pos token.Position, format string, args ...any) {
	g.diags.Addf(diag.Codegen, g.path, pos, format, args...)
}

// mapType implements spec.md 4.6's target type mapping.
func mapType(t types.Name) ir.Type {
	switch t {
	case types.I32:
		return ir.I32
	case types.F64:
		return ir.F64
	case types.Bool:
		return ir.I1
	case types.String:
		return ir.Ptr
	default:
		return ir.Void
	}
}

func signatureKey(name string, paramTypes []types.Name) string {
	key := name
	for _, t := range paramTypes {
		key += "$" + string(t)
	}
	return key
}

// mangleOperator implements spec.md 4.6's deterministic operator name
// mangling: "OP_" + the symbol spelled out by operatorSafeName, then
// "$PARAMTYPE" per parameter, e.g. OP_plus$i32$i32.
func mangleOperator(symbol string, paramTypes []types.Name) string {
	name := "OP_" + operatorSafeName(symbol)
	for _, t := range paramTypes {
		name += "$" + string(t)
	}
	return name
}

// operatorSafeName renders an operator symbol like "+" or "==" into an
// identifier-safe fragment for the mangled function name.
func operatorSafeName(symbol string) string {
	out := make([]byte, 0, len(symbol)*4)
	for _, r := range symbol {
		if name, ok := symbolNames[r]; ok {
			out = append(out, name...)
			continue
		}
		out = append(out, byte(r))
	}
	return string(out)
}

var symbolNames = map[rune]string{
	'+': "plus", '-': "minus", '*': "star", '/': "slash", '%': "pct",
	'=': "eq", '<': "lt", '>': "gt", '!': "bang", '&': "amp", '|': "pipe",
	'^': "caret", '?': "q", '.': "dot",
}

// Generate lowers the whole compilation unit.
func (g *Generator) Generate(userProg *ast.Program) *ir.Module {
	g.module = &ir.Module{}
	g.declareFunctions()
	g.declareOperators()
	g.defineFunctions()
	g.defineOperators()
	g.defineEntry(userProg)
	return g.module
}

func (g *Generator) sortedFunctionNames() []string {
	names := make([]string, 0, len(g.table.Functions))
	for n := range g.table.Functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (g *Generator) sortedOperatorSymbols() []string {
	names := make([]string, 0, len(g.table.Operators))
	for n := range g.table.Operators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// declareFunctions implements module-shape step 1.
func (g *Generator) declareFunctions() {
	for _, name := range g.sortedFunctionNames() {
		overloads := g.table.Functions[name]
		for _, sig := range overloads {
			irName := name
			if len(overloads) > 1 {
				irName = signatureKey(name, sig.ParamTypes)
			}
			g.funcIRName[signatureKey(name, sig.ParamTypes)] = irName
			g.module.Functions = append(g.module.Functions, &ir.Function{
				Name:       irName,
				Params:     mapParams(sig.ParamTypes),
				ReturnType: mapType(sig.ReturnType),
			})
		}
	}
}

// declareOperators implements module-shape step 2: every operator
// overload becomes an external function named by mangling alone, so
// overloads disambiguate purely by parameter types.
func (g *Generator) declareOperators() {
	for _, sym := range g.sortedOperatorSymbols() {
		for _, desc := range g.table.Operators[sym] {
			irName := mangleOperator(sym, desc.ParamTypes)
			g.opIRName[operatorKey(sym, desc.Position, desc.ParamTypes)] = irName
			g.module.Functions = append(g.module.Functions, &ir.Function{
				Name:       irName,
				Params:     mapParams(desc.ParamTypes),
				ReturnType: mapType(desc.ReturnType),
			})
		}
	}
}

func operatorKey(symbol string, pos ast.OperatorPosition, paramTypes []types.Name) string {
	return fmt.Sprintf("%d:%s", pos, signatureKey(symbol, paramTypes))
}

func mapParams(paramTypes []types.Name) []ir.Param {
	out := make([]ir.Param, len(paramTypes))
	for i, t := range paramTypes {
		out[i] = ir.Param{Name: fmt.Sprintf("p%d", i), Type: mapType(t)}
	}
	return out
}

// findFunction returns the already-declared ir.Function with the given
// irName, so bodies can be filled into the same *ir.Function record
// created during the declare pass.
func (g *Generator) findFunction(irName string) *ir.Function {
	for _, f := range g.module.Functions {
		if f.Name == irName {
			return f
		}
	}
	return nil
}
