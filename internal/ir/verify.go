package ir

import "fmt"

// Verify checks every function in m for the two invariants spec.md 4.6
// requires at the end of emission: every block ends in exactly one
// terminator, and every SSA value is used only after its definition.
// Function parameters and alloca'd stack slots are visible in every
// block of the function. Any other value (values that must survive a
// branch are round-tripped through a stack slot via load/store — there
// are no phi nodes) counts as defined only once an earlier instruction
// of the same block produced it; this verifier checks exactly that,
// rather than building a full dominator tree.
func Verify(m *Module) error {
	for _, f := range m.Functions {
		if f.IsDeclaration() {
			continue
		}
		if err := verifyFunction(f); err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return nil
}

func verifyFunction(f *Function) error {
	functionWide := make(map[string]bool)
	for _, p := range f.Params {
		functionWide[p.Name] = true
	}
	for _, blk := range f.Blocks {
		for _, in := range blk.Instructions {
			if in.Op == OpAlloca && in.Result != "" {
				functionWide[in.Result] = true
			}
		}
	}
	for _, blk := range f.Blocks {
		if !blk.Terminated() {
			return fmt.Errorf("block %s has no terminator", blk.Label)
		}
		defined := make(map[string]bool)
		for _, in := range blk.Instructions {
			for _, arg := range in.Args {
				if arg.Name != "" && !arg.IsConst && !arg.IsGlobal && !defined[arg.Name] && !functionWide[arg.Name] {
					return fmt.Errorf("block %s: use of %s before definition", blk.Label, arg.Name)
				}
			}
			if in.Result != "" {
				defined[in.Result] = true
			}
		}
	}
	return nil
}
