// Package ast defines Pecco's abstract syntax tree. Expression and
// statement nodes are tagged sum types: each consumer switches on the
// concrete Go type rather than using per-node virtual dispatch,
// keeping node storage flat (spec.md 9).
//
// Ownership is strictly tree-shaped: every child has exactly one
// parent, and every node's Pos points at a valid region of the
// original source (resolver-synthesized nodes reuse the span of their
// triggering operator token).
package ast

import (
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Expr is any expression node. InferredType is written exactly once,
// by the type checker, and read thereafter by the code generator.
type Expr interface {
	exprNode()
	Position() token.Position
	Type() types.Name
	SetType(types.Name)
}

// exprBase factors the position + inferred-type bookkeeping shared by
// every expression variant.
type exprBase struct {
	Pos          token.Position
	InferredType types.Name
}

func (e *exprBase) Position() token.Position { return e.Pos }
func (e *exprBase) Type() types.Name         { return e.InferredType }
func (e *exprBase) SetType(t types.Name)     { e.InferredType = t }

// IntegerLiteral holds the raw digit string; numeric parsing is
// deferred to code generation so lexing/parsing never fails on a
// literal too big for a particular backend width.
type IntegerLiteral struct {
	exprBase
	Raw string
}

func (*IntegerLiteral) exprNode() {}

// FloatLiteral holds the raw source text of a floating literal.
type FloatLiteral struct {
	exprBase
	Raw string
}

func (*FloatLiteral) exprNode() {}

// StringLiteral holds the decoded value (escapes already resolved by
// the lexer).
type StringLiteral struct {
	exprBase
	Value string
}

func (*StringLiteral) exprNode() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	exprBase
	Value bool
}

func (*BooleanLiteral) exprNode() {}

// Identifier references a name; resolution against the symbol table
// happens in internal/typecheck.
type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) exprNode() {}

// BinaryExpr is a resolved infix application: `Left Op Right`. Every
// BinaryExpr in a fully resolved AST was produced by internal/resolve;
// the parser never constructs one directly.
type BinaryExpr struct {
	exprBase
	Op       string
	OpPos    token.Position
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryPosition distinguishes a prefix application (`-x`) from a
// postfix one (`x++`).
type UnaryPosition int

const (
	Prefix UnaryPosition = iota
	Postfix
)

func (p UnaryPosition) String() string {
	if p == Postfix {
		return "postfix"
	}
	return "prefix"
}

// UnaryExpr is a resolved prefix or postfix application.
type UnaryExpr struct {
	exprBase
	Op       string
	OpPos    token.Position
	Operand  Expr
	Position UnaryPosition
}

func (*UnaryExpr) exprNode() {}

// OpSeqItem is one element of a parser-produced operator sequence:
// either an operand expression, or a bare operator symbol with its own
// span (Operand is nil in that case).
type OpSeqItem struct {
	Operand Expr
	Op      string
	OpPos   token.Position
}

// IsOperator reports whether this item is an operator-symbol item
// rather than an operand.
func (it OpSeqItem) IsOperator() bool { return it.Operand == nil }

// OpSeq is the parser's flat representation of an expression before
// precedence resolution: an ordered alternation of operand and
// operator-symbol items. internal/resolve rewrites every OpSeq node
// in-place into BinaryExpr/UnaryExpr form; no OpSeq survives in a
// resolved AST (spec.md 3, 8).
type OpSeq struct {
	exprBase
	Items []OpSeqItem
}

func (*OpSeq) exprNode() {}

// CallExpr applies Callee (always an Identifier once type-checked,
// per spec.md 4.5) to an ordered argument list.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}
