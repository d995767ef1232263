package ir

import (
	"fmt"
	"strings"
)

// Print renders m as the textual form printed by `--emit-ir`.
func Print(m *Module) string {
	var sb strings.Builder
	for _, g := range m.Globals {
		fmt.Fprintf(&sb, "global %s = %q\n", g.Name, g.Value)
	}
	if len(m.Globals) > 0 {
		sb.WriteString("\n")
	}
	for i, f := range m.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		printFunction(&sb, f)
	}
	return sb.String()
}

func printFunction(sb *strings.Builder, f *Function) {
	fmt.Fprintf(sb, "func %s(%s): %s", f.Name, joinParams(f.Params), f.ReturnType)
	if f.IsDeclaration() {
		sb.WriteString(" (external)\n")
		return
	}
	sb.WriteString(" {\n")
	for _, blk := range f.Blocks {
		fmt.Fprintf(sb, "%s:\n", blk.Label)
		for _, in := range blk.Instructions {
			fmt.Fprintf(sb, "  %s\n", in.String())
		}
	}
	sb.WriteString("}\n")
}

func joinParams(ps []Param) string {
	var sb strings.Builder
	for i, p := range ps {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", p.Name, p.Type)
	}
	return sb.String()
}
