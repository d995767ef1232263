package ast

import (
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	Position() token.Position
}

type stmtBase struct {
	Pos token.Position
}

func (s *stmtBase) Position() token.Position { return s.Pos }

// Param is a function/operator parameter: name, optional declared
// type (empty until/unless annotated — spec.md requires it be present
// by the time the symbol-table builder runs), and its own location.
type Param struct {
	Name string
	Type types.Name
	Pos  token.Position
}

// LetStmt is `let NAME (: TYPE)? = EXPR ;`.
type LetStmt struct {
	stmtBase
	Name         string
	DeclaredType types.Name // types.Unknown if omitted
	HasType      bool
	Init         Expr
}

func (*LetStmt) stmtNode() {}

// FuncDecl is `func NAME ( PARAMS ) (: TYPE)? ( BLOCK | ; )`. Body is
// nil for a declaration-only (external) function.
type FuncDecl struct {
	stmtBase
	Name       string
	Params     []Param
	ReturnType types.Name
	HasReturn  bool
	Body       *BlockStmt
}

func (*FuncDecl) stmtNode() {}

// OperatorPosition is the declared position of a user operator.
type OperatorPosition int

const (
	OpPrefix OperatorPosition = iota
	OpInfix
	OpPostfix
)

func (p OperatorPosition) String() string {
	switch p {
	case OpPrefix:
		return "prefix"
	case OpInfix:
		return "infix"
	case OpPostfix:
		return "postfix"
	default:
		return "?"
	}
}

// Associativity governs infix split-point tie-breaking; meaningless
// outside OpInfix.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// OperatorDecl is `operator (prefix|infix|postfix) OP ( PARAMS ) : TYPE
// ( prec INT (assoc_left|assoc_right)? )? ( BLOCK | ; )`.
type OperatorDecl struct {
	stmtBase
	Symbol        string
	Position      OperatorPosition
	Params        []Param
	ReturnType    types.Name
	Precedence    int // meaningful only when Position == OpInfix
	Assoc         Associativity
	Body          *BlockStmt
}

func (*OperatorDecl) stmtNode() {}

// IfStmt is `if EXPR BLOCK ( else ( if-stmt | BLOCK ) )?`. Else holds
// either a *BlockStmt or a nested *IfStmt, or nil.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

func (*IfStmt) stmtNode() {}

// ReturnStmt is `return EXPR? ;`.
type ReturnStmt struct {
	stmtBase
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) stmtNode() {}

// WhileStmt is `while EXPR BLOCK`.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *BlockStmt
}

func (*WhileStmt) stmtNode() {}

// ExprStmt is `EXPR ;`.
type ExprStmt struct {
	stmtBase
	X Expr
}

func (*ExprStmt) stmtNode() {}

// BlockStmt is `{ STMT* }`.
type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

func (*BlockStmt) stmtNode() {}

// Program is the root node: the ordered list of top-level statements.
type Program struct {
	Stmts []Stmt
}
