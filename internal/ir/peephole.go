package ir

// Peephole runs a single local optimization pass over mod, opt-in via
// pecco.yaml's `optimize` flag (SPEC_FULL.md 1.2). It eliminates two
// classic redundant store/load patterns, each scoped to one basic
// block: a store immediately followed by another store to the same
// slot drops the first (nothing can observe it before it is
// overwritten), and a store immediately followed by a load of the same
// slot forwards the stored value directly, eliminating the load. Both
// rules are grounded on the same alloca/store/load stack-slot
// convention internal/codegen lowers every local variable and
// short-circuit operand through; Verify's same-block def-before-use
// invariant guarantees a loaded value's uses never escape the block it
// was loaded in, so substitution never needs to cross a block
// boundary. Returns the number of rewrites applied.
func Peephole(mod *Module) int {
	total := 0
	for _, fn := range mod.Functions {
		for _, blk := range fn.Blocks {
			total += peepholeBlock(blk)
		}
	}
	return total
}

func peepholeBlock(blk *Block) int {
	changed := 0
	for peepholeBlockOnce(blk) {
		changed++
	}
	return changed
}

// peepholeBlockOnce applies at most one rewrite and reports whether it
// fired, so the caller can repeat until no further rewrite applies (a
// forwarded load may expose a store that is now itself dead).
func peepholeBlockOnce(blk *Block) bool {
	for i := 0; i+1 < len(blk.Instructions); i++ {
		cur, next := blk.Instructions[i], blk.Instructions[i+1]
		if cur.Op != OpStore || len(cur.Args) != 2 {
			continue
		}
		slot := cur.Args[1]

		if next.Op == OpStore && len(next.Args) == 2 && next.Args[1] == slot {
			blk.Instructions = append(blk.Instructions[:i], blk.Instructions[i+1:]...)
			return true
		}

		if next.Op == OpLoad && len(next.Args) == 1 && next.Args[0] == slot {
			substituteFrom(blk, i+2, next.Result, cur.Args[0])
			blk.Instructions = append(blk.Instructions[:i+1], blk.Instructions[i+2:]...)
			return true
		}
	}
	return false
}

// substituteFrom rewrites every argument use of oldName, from index
// start to the end of blk, to newVal.
func substituteFrom(blk *Block, start int, oldName string, newVal Value) {
	if oldName == "" {
		return
	}
	for i := start; i < len(blk.Instructions); i++ {
		in := &blk.Instructions[i]
		for j, a := range in.Args {
			if !a.IsConst && !a.IsGlobal && a.Name == oldName {
				in.Args[j] = newVal
			}
		}
	}
}
