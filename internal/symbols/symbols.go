// Package symbols implements Pecco's hierarchical symbol table
// (spec.md 4.3), grounded on the teacher's internal/semantic.SymbolTable
// (outer-chained scopes) and its Pass/PassManager architecture
// (internal/semantic/pass.go), generalized here into the much smaller
// closed-type-set, no-overload-directive variant Pecco needs: every
// function and operator name is implicitly an overload set, and there
// is no runtime value tracking since Pecco never interprets.
package symbols

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Origin distinguishes prelude-declared symbols from user-declared
// ones, so diagnostics and `--hide-prelude` dumps can tell them apart.
type Origin int

const (
	User Origin = iota
	Prelude
)

func (o Origin) String() string {
	if o == Prelude {
		return "prelude"
	}
	return "user"
}

// Kind distinguishes a lexical scope's role.
type Kind int

const (
	GlobalScope Kind = iota
	FunctionScope
	BlockScope
)

func (k Kind) String() string {
	switch k {
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	default:
		return "global"
	}
}

// VariableBinding is one `let`-bound name or function/operator
// parameter visible in a scope.
type VariableBinding struct {
	Name   string
	Type   types.Name
	Pos    token.Position
	Origin Origin
}

// FunctionSignature is one overload of a user- or prelude-declared
// function.
type FunctionSignature struct {
	Name       string
	ParamTypes []types.Name
	ReturnType types.Name
	Pos        token.Position
	Origin     Origin
	Decl       *ast.FuncDecl
}

// OperatorDescriptor is one overload of a declared prefix/infix/postfix
// operator.
type OperatorDescriptor struct {
	Symbol     string
	Position   ast.OperatorPosition
	ParamTypes []types.Name
	ReturnType types.Name
	Precedence int
	Assoc      ast.Associativity
	Pos        token.Position
	Origin     Origin
	Decl       *ast.OperatorDecl
}

// Scope is one node of the hierarchical scope tree: global scope holds
// function/operator overload sets plus global `let` bindings; function
// scopes hold parameters; block scopes hold `let` bindings local to an
// if/while/function body block. Children are recorded in declaration
// order so dumps (spec.md "--dump-symbols") are deterministic.
type Scope struct {
	Kind      Kind
	Parent    *Scope
	Children  []*Scope
	Variables map[string]*VariableBinding
	varOrder  []string
}

func newScope(kind Kind, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Parent: parent, Variables: make(map[string]*VariableBinding)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Define adds a new binding to this scope. It does not check for
// shadowing against ancestor scopes (shadowing is legal); duplicate
// definition within the *same* scope is the caller's responsibility to
// reject before calling Define.
func (s *Scope) Define(b *VariableBinding) {
	s.Variables[b.Name] = b
	s.varOrder = append(s.varOrder, b.Name)
}

// Lookup searches this scope and its ancestors for a variable binding.
func (s *Scope) Lookup(name string) (*VariableBinding, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.Variables[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// OwnNames returns this scope's own variable names in declaration
// order (for deterministic dumping).
func (s *Scope) OwnNames() []string {
	out := make([]string, len(s.varOrder))
	copy(out, s.varOrder)
	return out
}

// Table is the whole-program symbol table: a global Scope plus the
// function and operator overload sets, which live outside the scope
// tree proper since they are resolved by signature rather than by
// lexical nesting (spec.md 4.3, 4.5).
type Table struct {
	Global    *Scope
	Functions map[string][]*FunctionSignature
	Operators map[string][]*OperatorDescriptor
}

// NewTable creates an empty table with just a global scope.
func NewTable() *Table {
	return &Table{
		Global:    newScope(GlobalScope, nil),
		Functions: make(map[string][]*FunctionSignature),
		Operators: make(map[string][]*OperatorDescriptor),
	}
}

// NewFunctionScope creates a child scope under the global scope for one
// function or operator body.
func (t *Table) NewFunctionScope() *Scope {
	return newScope(FunctionScope, t.Global)
}

// NewBlockScope creates a nested block scope under parent (an if/while
// body, or a function body's own block).
func NewBlockScope(parent *Scope) *Scope {
	return newScope(BlockScope, parent)
}

func (t *Table) addFunction(sig *FunctionSignature) {
	t.Functions[sig.Name] = append(t.Functions[sig.Name], sig)
}

func (t *Table) addOperator(desc *OperatorDescriptor) {
	t.Operators[desc.Symbol] = append(t.Operators[desc.Symbol], desc)
}

// LookupFunction returns every declared overload of name.
func (t *Table) LookupFunction(name string) []*FunctionSignature {
	return t.Functions[name]
}

// LookupOperator returns every declared overload of symbol at the
// given syntactic position (prefix/infix/postfix); overloads at other
// positions sharing the same symbol text are excluded, since `-` as a
// prefix operator and `-` as an infix operator are unrelated overload
// sets (spec.md 4.4).
func (t *Table) LookupOperator(symbol string, pos ast.OperatorPosition) []*OperatorDescriptor {
	var out []*OperatorDescriptor
	for _, d := range t.Operators[symbol] {
		if d.Position == pos {
			out = append(out, d)
		}
	}
	return out
}

// ExactDuplicate reports whether a function overload with the exact
// same parameter-type tuple as sig already exists, per spec.md 4.3's
// duplicate-overload-signature rule.
func ExactDuplicate(existing []*FunctionSignature, paramTypes []types.Name) *FunctionSignature {
	for _, e := range existing {
		if types.SameTuple(e.ParamTypes, paramTypes) {
			return e
		}
	}
	return nil
}

// ExactDuplicateOperator is ExactDuplicate's analogue for operator
// overload sets.
func ExactDuplicateOperator(existing []*OperatorDescriptor, paramTypes []types.Name) *OperatorDescriptor {
	for _, e := range existing {
		if types.SameTuple(e.ParamTypes, paramTypes) {
			return e
		}
	}
	return nil
}
