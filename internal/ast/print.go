package ast

import (
	"fmt"
	"strings"
)

// Dump renders prog as an indented tree, in the style of the teacher
// CLI's dumpASTNode helper, generalized into the AST package itself so
// every consumer (the `parse`/`build --dump-ast` commands, tests) gets
// the same rendering.
func Dump(prog *Program) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Program (%d statements)\n", len(prog.Stmts))
	for _, s := range prog.Stmts {
		dumpStmt(&sb, s, 1)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpStmt(sb *strings.Builder, s Stmt, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *LetStmt:
		fmt.Fprintf(sb, "LetStmt %s", n.Name)
		if n.HasType {
			fmt.Fprintf(sb, ": %s", n.DeclaredType)
		}
		sb.WriteString("\n")
		dumpExpr(sb, n.Init, depth+1)
	case *FuncDecl:
		fmt.Fprintf(sb, "FuncDecl %s(", n.Name)
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: %s", p.Name, p.Type)
		}
		sb.WriteString(")")
		if n.HasReturn {
			fmt.Fprintf(sb, ": %s", n.ReturnType)
		}
		sb.WriteString("\n")
		if n.Body != nil {
			dumpStmt(sb, n.Body, depth+1)
		}
	case *OperatorDecl:
		fmt.Fprintf(sb, "OperatorDecl %s %s(", n.Position, n.Symbol)
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: %s", p.Name, p.Type)
		}
		fmt.Fprintf(sb, "): %s", n.ReturnType)
		if n.Position == OpInfix {
			fmt.Fprintf(sb, " prec %d", n.Precedence)
		}
		sb.WriteString("\n")
		if n.Body != nil {
			dumpStmt(sb, n.Body, depth+1)
		}
	case *IfStmt:
		sb.WriteString("IfStmt\n")
		dumpExpr(sb, n.Cond, depth+1)
		dumpStmt(sb, n.Then, depth+1)
		if n.Else != nil {
			dumpStmt(sb, n.Else, depth+1)
		}
	case *ReturnStmt:
		sb.WriteString("ReturnStmt\n")
		if n.Value != nil {
			dumpExpr(sb, n.Value, depth+1)
		}
	case *WhileStmt:
		sb.WriteString("WhileStmt\n")
		dumpExpr(sb, n.Cond, depth+1)
		dumpStmt(sb, n.Body, depth+1)
	case *ExprStmt:
		sb.WriteString("ExprStmt\n")
		dumpExpr(sb, n.X, depth+1)
	case *BlockStmt:
		fmt.Fprintf(sb, "BlockStmt (%d statements)\n", len(n.Stmts))
		for _, sub := range n.Stmts {
			dumpStmt(sb, sub, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%T\n", s)
	}
}

func dumpExpr(sb *strings.Builder, e Expr, depth int) {
	indent(sb, depth)
	switch n := e.(type) {
	case *IntegerLiteral:
		fmt.Fprintf(sb, "IntegerLiteral %s\n", n.Raw)
	case *FloatLiteral:
		fmt.Fprintf(sb, "FloatLiteral %s\n", n.Raw)
	case *StringLiteral:
		fmt.Fprintf(sb, "StringLiteral %q\n", n.Value)
	case *BooleanLiteral:
		fmt.Fprintf(sb, "BooleanLiteral %v\n", n.Value)
	case *Identifier:
		fmt.Fprintf(sb, "Identifier %s\n", n.Name)
	case *BinaryExpr:
		fmt.Fprintf(sb, "BinaryExpr %s\n", n.Op)
		dumpExpr(sb, n.Left, depth+1)
		dumpExpr(sb, n.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(sb, "UnaryExpr %s (%v)\n", n.Op, n.Position)
		dumpExpr(sb, n.Operand, depth+1)
	case *OpSeq:
		fmt.Fprintf(sb, "OpSeq (%d items)\n", len(n.Items))
		for _, it := range n.Items {
			if it.IsOperator() {
				indent(sb, depth+1)
				fmt.Fprintf(sb, "Op %s\n", it.Op)
			} else {
				dumpExpr(sb, it.Operand, depth+1)
			}
		}
	case *CallExpr:
		sb.WriteString("CallExpr\n")
		dumpExpr(sb, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpr(sb, a, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%T\n", e)
	}
}
