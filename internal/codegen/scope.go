package codegen

import "github.com/Pecco-314/pecco-lang/internal/ir"

// slot is a stack allocation for one variable: reads load from it,
// writes store to it (spec.md 4.6, "Variable storage").
type slot struct {
	value ir.Value
}

// genScope mirrors block/function entry and exit exactly as
// internal/typecheck's scope does, but holds stack-slot values instead
// of types (spec.md 4.6).
type genScope struct {
	parent *genScope
	slots  map[string]slot
}

func newGenScope(parent *genScope) *genScope {
	return &genScope{parent: parent, slots: make(map[string]slot)}
}

func (s *genScope) define(name string, v slot) { s.slots[name] = v }

func (s *genScope) lookup(name string) (slot, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.slots[name]; ok {
			return v, true
		}
	}
	return slot{}, false
}
