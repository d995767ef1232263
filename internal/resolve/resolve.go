// Package resolve implements Pecco's operator resolver (spec.md 4.4),
// the pass that rewrites every ast.OpSeq into a tree of ast.BinaryExpr
// and ast.UnaryExpr nodes using greedy prefix/postfix folding followed
// by a precedence-directed infix split. It is grounded on the
// teacher's multi-pass analysis shape (internal/semantic/pass.go) in
// spirit — one self-contained rewrite pass over the whole AST — though
// Pecco's resolver mutates the tree in place rather than only
// annotating it, since an OpSeq is by definition not yet the AST shape
// later passes expect.
package resolve

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
	"github.com/Pecco-314/pecco-lang/internal/token"
)

// Resolver rewrites OpSeq nodes using the operator declarations found
// in table.
type Resolver struct {
	table *symbols.Table
	path  string
	diags diag.List
}

// New creates a Resolver over an already-built symbol table.
func New(table *symbols.Table, path string) *Resolver {
	return &Resolver{table: table, path: path}
}

// Diagnostics returns the diagnostics recorded while resolving.
func (r *Resolver) Diagnostics() *diag.List { return &r.diags }

func (r *Resolver) errorf(pos token.Position, format string, args ...any) {
	r.diags.Addf(diag.Resolver, r.path, pos, format, args...)
}

// Program rewrites every expression in prog in place. It is idempotent:
// an already-resolved AST contains no OpSeq nodes, so a second run is a
// no-op traversal.
func (r *Resolver) Program(prog *ast.Program) {
	ast.WalkProgram(prog, r.resolveExpr)
}

// resolveExpr is the structural per-node rewrite callback threaded
// through ast.WalkProgram/WalkStmt. It first resolves any OpSeq
// children recursively (call arguments, parenthesized sub-expressions
// already attached to the tree), then resolves e itself if it is an
// OpSeq.
func (r *Resolver) resolveExpr(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.CallExpr:
		n.Callee = r.resolveExpr(n.Callee)
		for i, a := range n.Args {
			n.Args[i] = r.resolveExpr(a)
		}
		return n
	case *ast.BinaryExpr:
		n.Left = r.resolveExpr(n.Left)
		n.Right = r.resolveExpr(n.Right)
		return n
	case *ast.UnaryExpr:
		n.Operand = r.resolveExpr(n.Operand)
		return n
	case *ast.OpSeq:
		return r.resolveOpSeq(n)
	default:
		return e
	}
}

func (r *Resolver) isPrefix(sym string) bool {
	return len(r.table.LookupOperator(sym, ast.OpPrefix)) > 0
}

func (r *Resolver) isPostfix(sym string) bool {
	return len(r.table.LookupOperator(sym, ast.OpPostfix)) > 0
}

func (r *Resolver) infixInfo(sym string) (prec int, assoc ast.Associativity, ok bool) {
	descs := r.table.LookupOperator(sym, ast.OpInfix)
	if len(descs) == 0 {
		return 0, ast.AssocLeft, false
	}
	return descs[0].Precedence, descs[0].Assoc, true
}

// operand is one fully prefix/postfix-wrapped subtree produced by step
// 1, paired with the infix operator (if any) that follows it.
type operand struct {
	expr      ast.Expr
	infixOp   string
	infixPos  token.Position
	precedence int
	assoc      ast.Associativity
	hasInfix   bool
}

// resolveOpSeq implements spec.md 4.4 end to end for one OpSeq node.
func (r *Resolver) resolveOpSeq(seq *ast.OpSeq) ast.Expr {
	items := seq.Items
	i := 0
	var operands []operand

	for i < len(items) {
		// Step 1.1: greedy prefix run.
		var prefixOps []ast.OpSeqItem
		for i < len(items) && items[i].IsOperator() && r.isPrefix(items[i].Op) {
			prefixOps = append(prefixOps, items[i])
			i++
		}
		// An operator item that is neither prefix-valid here nor
		// consumed as the tail's trailing infix is a hard error: it
		// means the sequence has two operators in a row with no
		// operand between them.
		if i < len(items) && items[i].IsOperator() && !r.isPrefix(items[i].Op) {
			r.errorf(items[i].OpPos, "operator %q cannot appear here: expected an operand", items[i].Op)
			return seq
		}

		if i >= len(items) {
			r.errorf(seq.Pos, "expected an operand after %q", prefixOps[len(prefixOps)-1].Op)
			return seq
		}
		item := items[i]
		if item.IsOperator() {
			r.errorf(item.OpPos, "expected an operand, found operator %q", item.Op)
			return seq
		}
		expr := item.Operand
		i++

		// Step 1.3: wrap prefix applications innermost-outward, i.e.
		// right-to-left over the collected list.
		for k := len(prefixOps) - 1; k >= 0; k-- {
			op := prefixOps[k]
			u := &ast.UnaryExpr{Op: op.Op, OpPos: op.OpPos, Operand: r.resolveExpr(expr), Position: ast.Prefix}
			u.Pos = op.OpPos
			expr = u
		}
		if len(prefixOps) == 0 {
			expr = r.resolveExpr(expr)
		}

		// Step 1.4: greedy postfix run.
		for i < len(items) && items[i].IsOperator() && r.isPostfix(items[i].Op) {
			op := items[i]
			u := &ast.UnaryExpr{Op: op.Op, OpPos: op.OpPos, Operand: expr, Position: ast.Postfix}
			u.Pos = op.OpPos
			expr = u
			i++
		}

		opd := operand{expr: expr}

		// Step 1.5: an optional trailing infix operator.
		if i < len(items) && items[i].IsOperator() {
			op := items[i]
			prec, assoc, ok := r.infixInfo(op.Op)
			if !ok {
				r.errorf(op.OpPos, "%q is not declared as an infix operator", op.Op)
				return seq
			}
			opd.hasInfix = true
			opd.infixOp = op.Op
			opd.infixPos = op.OpPos
			opd.precedence = prec
			opd.assoc = assoc
			i++
		}

		operands = append(operands, opd)
	}

	if len(operands) == 0 {
		r.errorf(seq.Pos, "empty expression")
		return seq
	}
	if operands[len(operands)-1].hasInfix {
		last := operands[len(operands)-1]
		r.errorf(last.infixPos, "expected an operand after %q", last.infixOp)
		return seq
	}

	result := r.buildInfixTree(operands)
	if result == nil {
		return seq
	}
	return result
}

// buildInfixTree implements step 2: recursive precedence-directed
// split over operands[0:], where operands[k].infixOp is the operator
// joining operands[k] and operands[k+1].
func (r *Resolver) buildInfixTree(operands []operand) ast.Expr {
	if len(operands) == 1 {
		return operands[0].expr
	}

	// Find the lowest-precedence split point among operands[0 .. n-2]
	// (each carries the infix operator to its right).
	splitIdx := 0
	lowest := operands[0].precedence
	for k := 1; k < len(operands)-1; k++ {
		if operands[k].precedence < lowest {
			lowest = operands[k].precedence
		}
	}
	// Collect every index at the lowest precedence; verify uniform
	// associativity among them (mixed-associativity check).
	var assoc ast.Associativity
	assocSet := false
	for k := 0; k < len(operands)-1; k++ {
		if operands[k].precedence != lowest {
			continue
		}
		if !assocSet {
			assoc = operands[k].assoc
			assocSet = true
			splitIdx = k
			continue
		}
		if operands[k].assoc != assoc {
			r.errorf(operands[k].infixPos, "mixed associativity at the same precedence level: %q", operands[k].infixOp)
			return nil
		}
		switch assoc {
		case ast.AssocRight:
			// leftmost occurrence wins; keep the first one found.
		default:
			// left-associative (or none): rightmost occurrence wins.
			splitIdx = k
		}
	}

	left := r.buildInfixTree(operands[:splitIdx+1])
	right := r.buildInfixTree(shiftedOperands(operands[splitIdx+1:]))
	if left == nil || right == nil {
		return nil
	}

	split := operands[splitIdx]
	bin := &ast.BinaryExpr{Op: split.infixOp, OpPos: split.infixPos, Left: left, Right: right}
	bin.Pos = split.infixPos
	return bin
}

// shiftedOperands rebuilds an operand slice for a recursive sub-range:
// the last operand of the sub-range must have no trailing infix,
// mirroring how operands[:splitIdx+1]'s last element (the split
// operator's left side) also carries no meaningful trailing infix once
// isolated. Since operand already stores the infix to its own right,
// slicing operands[splitIdx+1:] already yields exactly this shape with
// no adjustment needed; this helper exists to make that invariant
// explicit at the call site.
func shiftedOperands(operands []operand) []operand {
	return operands
}
