package ir

import (
	"strings"
	"testing"
)

func TestBuilderFreshNamesAreUnique(t *testing.T) {
	b := NewBuilder()
	v1 := b.FreshValue()
	v2 := b.FreshValue()
	if v1 == v2 {
		t.Fatalf("expected distinct fresh values, got %q twice", v1)
	}
	blk1 := b.FreshBlock("if.then")
	blk2 := b.FreshBlock("if.then")
	if blk1.Label == blk2.Label {
		t.Fatalf("expected distinct fresh block labels, got %q twice", blk1.Label)
	}
}

func TestBlockAppendStopsAfterTerminator(t *testing.T) {
	blk := &Block{Label: "entry"}
	blk.Append(Instruction{Op: OpRetVoid})
	if !blk.Terminated() {
		t.Fatalf("expected block to be terminated after ret_void")
	}
	blk.Append(Instruction{Op: OpAdd, Result: "%1"})
	if len(blk.Instructions) != 1 {
		t.Fatalf("expected append after terminator to be a no-op, got %d instructions", len(blk.Instructions))
	}
}

func buildSimpleModule() *Module {
	fn := &Function{Name: "add", Params: []Param{{Name: "a", Type: I32}, {Name: "b", Type: I32}}, ReturnType: I32}
	entry := &Block{Label: "entry"}
	entry.Append(Instruction{Result: "%1", ResultType: I32, Op: OpAdd, Args: []Value{Reg("a", I32), Reg("b", I32)}})
	entry.Append(Instruction{Op: OpRet, Args: []Value{Reg("%1", I32)}})
	fn.Blocks = []*Block{entry}
	return &Module{Functions: []*Function{fn}}
}

func TestVerifyAcceptsWellFormedModule(t *testing.T) {
	if err := Verify(buildSimpleModule()); err != nil {
		t.Fatalf("unexpected verification error: %v", err)
	}
}

func TestVerifyRejectsUnterminatedBlock(t *testing.T) {
	fn := &Function{Name: "bad", ReturnType: Void}
	fn.Blocks = []*Block{{Label: "entry", Instructions: []Instruction{
		{Result: "%1", Op: OpAdd, Args: []Value{ConstVal("1", I32), ConstVal("2", I32)}},
	}}}
	m := &Module{Functions: []*Function{fn}}
	if err := Verify(m); err == nil {
		t.Fatalf("expected an unterminated-block error")
	}
}

func TestVerifyRejectsUseBeforeDefinition(t *testing.T) {
	fn := &Function{Name: "bad", ReturnType: I32}
	fn.Blocks = []*Block{{Label: "entry", Instructions: []Instruction{
		{Op: OpRet, Args: []Value{Reg("%1", I32)}},
	}}}
	m := &Module{Functions: []*Function{fn}}
	if err := Verify(m); err == nil {
		t.Fatalf("expected a use-before-definition error")
	}
}

func TestVerifySkipsDeclarations(t *testing.T) {
	fn := &Function{Name: "external", ReturnType: Void}
	m := &Module{Functions: []*Function{fn}}
	if err := Verify(m); err != nil {
		t.Fatalf("expected declarations to be skipped, got %v", err)
	}
}

func TestPrintIncludesFunctionSignatureAndBody(t *testing.T) {
	out := Print(buildSimpleModule())
	if !strings.Contains(out, "add") {
		t.Fatalf("expected printed IR to mention function name, got:\n%s", out)
	}
	if !strings.Contains(out, "entry") {
		t.Fatalf("expected printed IR to mention block label, got:\n%s", out)
	}
	if !strings.Contains(out, "ret") {
		t.Fatalf("expected printed IR to mention the ret instruction, got:\n%s", out)
	}
}

func TestValueStringForms(t *testing.T) {
	if Reg("%1", I32).String() != "%1" {
		t.Fatalf("expected register to print as %%1")
	}
	if ConstVal("42", I32).String() != "42" {
		t.Fatalf("expected constant to print as its literal text")
	}
	if GlobalVal("str.0", Ptr).String() != "@str.0" {
		t.Fatalf("expected global to print with an '@' prefix")
	}
}
