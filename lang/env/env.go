// Package env implements the language's Environment: an insertion-order
// stable mapping from identifier to value. An Environment has no parent
// pointer; scope chaining is the VM's responsibility (spec §3, §4.2).
//
// The name->slot index is backed by dolthub/swiss (as the teacher's
// lang/machine/map.go backs its Map variant), since Go's builtin map does
// not need to preserve order and swiss gives faster lookups for the
// VM's hot GET_VARIABLE/SET_VARIABLE path; insertion order itself is kept
// in a parallel slice because swiss.Map does not provide it.
package env

import (
	"github.com/dolthub/swiss"

	"github.com/pebblescript/pebble/lang/value"
)

type entry struct {
	name string
	val  value.Value
}

// Env is an insertion-ordered name->Value mapping, the language's single
// lexical scope (component B).
type Env struct {
	index   *swiss.Map[string, int] // name -> index into entries
	entries []entry
}

// New returns an empty Environment.
func New() *Env {
	return &Env{index: swiss.NewMap[string, int](8)}
}

// Has reports whether name is bound in this environment.
func (e *Env) Has(name string) bool {
	_, ok := e.index.Get(name)
	return ok
}

// Get returns the value bound to name, or Undefined if absent.
func (e *Env) Get(name string) value.Value {
	if i, ok := e.index.Get(name); ok {
		return e.entries[i].val
	}
	return value.Undef
}

// Set inserts or overwrites the binding for name, preserving insertion
// order on first insertion.
func (e *Env) Set(name string, v value.Value) {
	if i, ok := e.index.Get(name); ok {
		e.entries[i].val = v
		return
	}
	e.index.Put(name, len(e.entries))
	e.entries = append(e.entries, entry{name: name, val: v})
}

// Define inserts name->v only if name is not already bound in this
// environment; redefinition is a silent no-op, per spec's invariant that
// `let` in the same scope never clobbers an existing binding.
func (e *Env) Define(name string, v value.Value) {
	if e.Has(name) {
		return
	}
	e.Set(name, v)
}

// MergeFrom copies every binding of other into e, overwriting existing
// bindings of the same name. Used by the IMPORT opcode to merge a library's
// Environment into the current scope.
func (e *Env) MergeFrom(other *Env) {
	for _, en := range other.entries {
		e.Set(en.name, en.val)
	}
}
