package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Dump renders the table as indented text, in declaration order for a
// single scope's own bindings and in sorted-name order across
// functions/operators (spec.md 4.3's determinism requirement for
// `--dump-symbols`: two compiles of the same source must produce byte-
// identical output). hidePrelude omits prelude-origin entries, for the
// CLI's `--hide-prelude` flag.
func Dump(t *Table, hidePrelude bool) string {
	var sb strings.Builder
	sb.WriteString("Functions:\n")
	for _, name := range sortedKeys(t.Functions) {
		for _, sig := range t.Functions[name] {
			if hidePrelude && sig.Origin == Prelude {
				continue
			}
			fmt.Fprintf(&sb, "  %s(%s): %s [%s]\n", sig.Name, joinTypes(sig.ParamTypes), sig.ReturnType, sig.Origin)
		}
	}
	sb.WriteString("Operators:\n")
	for _, sym := range sortedKeys(t.Operators) {
		for _, desc := range t.Operators[sym] {
			if hidePrelude && desc.Origin == Prelude {
				continue
			}
			fmt.Fprintf(&sb, "  %s %s(%s): %s [%s]\n", desc.Position, desc.Symbol, joinTypes(desc.ParamTypes), desc.ReturnType, desc.Origin)
		}
	}
	sb.WriteString("Globals:\n")
	dumpScope(&sb, t.Global, hidePrelude, 1)
	return sb.String()
}

func dumpScope(sb *strings.Builder, s *Scope, hidePrelude bool, depth int) {
	for _, name := range s.OwnNames() {
		b := s.Variables[name]
		if hidePrelude && b.Origin == Prelude {
			continue
		}
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(sb, "%s: %s [%s]\n", b.Name, b.Type, b.Origin)
	}
}

func sortedKeys[V any](m map[string][]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinTypes(names []types.Name) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
