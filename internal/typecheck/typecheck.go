// Package typecheck implements Pecco's bottom-up type checker
// (spec.md 4.5): a single pass over the resolved AST that annotates
// every expression's InferredType and validates operator/call overload
// selection, condition types, and let-statement type agreement. It is
// grounded on the teacher's multi-pass style (internal/semantic
// analyze_expressions.go, analyze_statements.go) generalized to
// Pecco's closed five-type set and non-overload-directive resolution.
package typecheck

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// scope is the checker's own lexical scope stack, distinct from
// internal/symbols.Scope: it mirrors traversal order rather than the
// symbol builder's declaration order, since parameters must be visible
// only inside the body they belong to (spec.md 4.5).
type scope struct {
	parent *scope
	vars   map[string]types.Name
	isRoot bool
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]types.Name)}
}

// define binds name in s, reporting whether it was previously unbound
// in this exact scope (shadowing a name from an enclosing scope is
// always fine; rebinding a name already in s is not, spec.md 4.3).
func (s *scope) define(name string, t types.Name) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = t
	return true
}

func (s *scope) lookup(name string) (types.Name, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return types.Unknown, false
}

// Checker runs the type-checking pass against a symbol table already
// populated by internal/symbols and resolved by internal/resolve.
type Checker struct {
	table *symbols.Table
	path  string
	diags diag.List
	cur   *scope
}

// New creates a Checker.
func New(table *symbols.Table, path string) *Checker {
	return &Checker{table: table, path: path}
}

// Diagnostics returns the diagnostics recorded while checking.
func (c *Checker) Diagnostics() *diag.List { return &c.diags }

func (c *Checker) errorf(pos token.Position, format string, args ...any) {
	c.diags.Addf(diag.Types, c.path, pos, format, args...)
}

// Program type-checks every top-level statement. Global `let`
// initializers and function/operator bodies all share one root scope
// seeded with every global variable binding, so a global can be read
// from inside any function body (Pecco has no nested functions, so
// there is no deeper closure question here).
func (c *Checker) Program(prog *ast.Program) {
	root := newScope(nil)
	root.isRoot = true
	for name, b := range c.table.Global.Variables {
		// internal/symbols already rejected a duplicate global `let`
		// before this pass ever runs; seeding root is not a fresh
		// binding site, so it bypasses the local-scope duplicate check
		// below.
		root.vars[name] = b.Type
	}
	c.cur = root

	for _, stmt := range prog.Stmts {
		c.checkStmt(stmt)
	}
}

func (c *Checker) pushScope()      { c.cur = newScope(c.cur) }
func (c *Checker) popScope(p *scope) { c.cur = p }

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.LetStmt:
		c.checkLet(n)
	case *ast.FuncDecl:
		c.checkFuncDecl(n)
	case *ast.OperatorDecl:
		c.checkOperatorDecl(n)
	case *ast.IfStmt:
		c.checkIf(n)
	case *ast.ReturnStmt:
		if n.Value != nil {
			c.checkExpr(n.Value)
		}
	case *ast.WhileStmt:
		c.checkWhile(n)
	case *ast.ExprStmt:
		c.checkExpr(n.X)
	case *ast.BlockStmt:
		c.checkBlock(n)
	}
}

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	saved := c.cur
	c.pushScope()
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
	c.popScope(saved)
}

func (c *Checker) checkLet(n *ast.LetStmt) {
	initType := types.Unknown
	if n.Init != nil {
		initType = c.checkExpr(n.Init)
	}
	declared := n.DeclaredType
	if n.HasType {
		if initType != types.Unknown && initType != declared {
			c.errorf(n.Pos, "cannot assign value of type %q to variable %q declared as %q", initType, n.Name, declared)
		}
		c.defineLocal(n.Pos, n.Name, declared)
		return
	}
	c.defineLocal(n.Pos, n.Name, initType)
}

// defineLocal binds name in the current scope, reporting spec.md 4.3's
// "duplicate variable binding in one scope" error for a local rebind.
// The root scope is seeded from already-validated globals (see
// Program) rather than freshly bound here, so it is exempt: global
// duplicates are internal/symbols' job, not this pass's.
func (c *Checker) defineLocal(pos token.Position, name string, t types.Name) {
	if c.cur.isRoot {
		c.cur.define(name, t)
		return
	}
	if !c.cur.define(name, t) {
		c.errorf(pos, "%q is already defined in this scope", name)
	}
}

func (c *Checker) checkFuncDecl(n *ast.FuncDecl) {
	if n.Body == nil {
		return
	}
	saved := c.cur
	c.pushScope()
	for _, p := range n.Params {
		c.cur.define(p.Name, p.Type)
	}
	for _, s := range n.Body.Stmts {
		c.checkStmt(s)
	}
	c.popScope(saved)
}

func (c *Checker) checkOperatorDecl(n *ast.OperatorDecl) {
	if n.Body == nil {
		return
	}
	saved := c.cur
	c.pushScope()
	for _, p := range n.Params {
		c.cur.define(p.Name, p.Type)
	}
	for _, s := range n.Body.Stmts {
		c.checkStmt(s)
	}
	c.popScope(saved)
}

func (c *Checker) checkIf(n *ast.IfStmt) {
	condType := c.checkExpr(n.Cond)
	if condType != types.Unknown && condType != types.Bool {
		c.errorf(n.Cond.Position(), "if condition must have type bool, got %q", condType)
	}
	c.checkStmt(n.Then)
	if n.Else != nil {
		c.checkStmt(n.Else)
	}
}

func (c *Checker) checkWhile(n *ast.WhileStmt) {
	condType := c.checkExpr(n.Cond)
	if condType != types.Unknown && condType != types.Bool {
		c.errorf(n.Cond.Position(), "while condition must have type bool, got %q", condType)
	}
	c.checkStmt(n.Body)
}

// checkExpr infers and records e's type, returning it for the caller's
// convenience.
func (c *Checker) checkExpr(e ast.Expr) types.Name {
	if e == nil {
		return types.Unknown
	}
	var t types.Name
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		t = types.I32
	case *ast.FloatLiteral:
		t = types.F64
	case *ast.StringLiteral:
		t = types.String
	case *ast.BooleanLiteral:
		t = types.Bool
	case *ast.Identifier:
		if found, ok := c.cur.lookup(n.Name); ok {
			t = found
		} else {
			t = types.Unknown
		}
	case *ast.BinaryExpr:
		t = c.checkBinary(n)
	case *ast.UnaryExpr:
		t = c.checkUnary(n)
	case *ast.CallExpr:
		t = c.checkCall(n)
	case *ast.OpSeq:
		// Should never reach the type checker; internal/resolve
		// rewrites every OpSeq before this pass runs. Treat as
		// unknown rather than panicking so a resolver bug degrades to
		// a diagnostic instead of a crash.
		c.errorf(n.Pos, "internal error: unresolved operator sequence reached the type checker")
		t = types.Unknown
	default:
		t = types.Unknown
	}
	e.SetType(t)
	return t
}

func (c *Checker) checkBinary(n *ast.BinaryExpr) types.Name {
	lt := c.checkExpr(n.Left)
	rt := c.checkExpr(n.Right)

	overloads := c.table.LookupOperator(n.Op, ast.OpInfix)
	if len(overloads) == 0 {
		c.errorf(n.OpPos, "operator %q is not declared as an infix operator", n.Op)
		return types.Unknown
	}
	for _, ov := range overloads {
		if len(ov.ParamTypes) == 2 && ov.ParamTypes[0] == lt && ov.ParamTypes[1] == rt {
			return ov.ReturnType
		}
	}
	if lt != types.Unknown && rt != types.Unknown {
		c.errorf(n.OpPos, "no overload of %q accepts (%s, %s)", n.Op, lt, rt)
	}
	return overloads[0].ReturnType
}

func (c *Checker) checkUnary(n *ast.UnaryExpr) types.Name {
	ot := c.checkExpr(n.Operand)

	pos := ast.OpPrefix
	if n.Position == ast.Postfix {
		pos = ast.OpPostfix
	}
	overloads := c.table.LookupOperator(n.Op, pos)
	if len(overloads) == 0 {
		c.errorf(n.OpPos, "operator %q is not declared as a %s operator", n.Op, pos)
		return types.Unknown
	}
	for _, ov := range overloads {
		if len(ov.ParamTypes) == 1 && ov.ParamTypes[0] == ot {
			return ov.ReturnType
		}
	}
	if ot != types.Unknown {
		c.errorf(n.OpPos, "no overload of %q accepts (%s)", n.Op, ot)
	}
	return overloads[0].ReturnType
}

func (c *Checker) checkCall(n *ast.CallExpr) types.Name {
	argTypes := make([]types.Name, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.checkExpr(a)
	}

	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		c.errorf(n.Position(), "call target must be a function name")
		return types.Unknown
	}

	overloads := c.table.LookupFunction(id.Name)
	if len(overloads) == 0 {
		c.errorf(id.Pos, "undefined function %q", id.Name)
		return types.Unknown
	}

	best := bestOverload(overloads, argTypes)
	if best == nil {
		c.errorf(n.Position(), "no overload of %q matches the given argument types", id.Name)
		return overloads[0].ReturnType
	}
	return best.ReturnType
}

// bestOverload picks the overload whose parameter count matches and
// whose types agree with argTypes most closely: an exact match wins
// outright; otherwise the first count-matching overload is used as a
// tolerant fallback, mirroring the checker's general policy of
// preferring to proceed over unknown types rather than halting
// (spec.md 4.5).
func bestOverload(overloads []*symbols.FunctionSignature, argTypes []types.Name) *symbols.FunctionSignature {
	var fallback *symbols.FunctionSignature
	for _, ov := range overloads {
		if len(ov.ParamTypes) != len(argTypes) {
			continue
		}
		if fallback == nil {
			fallback = ov
		}
		exact := true
		for i, pt := range ov.ParamTypes {
			if argTypes[i] != types.Unknown && argTypes[i] != pt {
				exact = false
				break
			}
		}
		if exact {
			return ov
		}
	}
	return fallback
}
