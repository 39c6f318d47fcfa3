package vm

import (
	"fmt"
	"strings"

	"github.com/pebblescript/pebble/lang/env"
	"github.com/pebblescript/pebble/lang/value"
)

// AddLibrary registers a named Environment of bindings under name, made
// available to user code via `(import name)` (spec §6's "game module
// host must register"). It may be called before or after Load/LoadProgram:
// IMPORT merges from whatever is registered at the time it executes, so
// registering or re-registering after Load takes effect on the next import.
func (vm *VM) AddLibrary(name string, bindings map[string]value.Value) {
	lib := env.New()
	for k, v := range bindings {
		lib.Set(k, v)
	}
	vm.libraries[name] = lib
}

// registerGlobals installs the built-in globals (spec §6) into the fresh
// root env created by LoadProgram/Stop: the four casting Type values,
// `print`, and the kernel's edge-triggered tick predicates.
func (vm *VM) registerGlobals() {
	root := vm.envStack[0]
	root.Define("bool", value.BoolType)
	root.Define("number", value.NumberType)
	root.Define("string", value.StringType)
	root.Define("function", value.FunctionType)

	root.Define("print", &value.NativeFunction{
		Name:  "print",
		Arity: -1,
		Fn: func(args []value.Value) value.Value {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = a.String()
			}
			fmt.Fprintln(vm.Out, strings.Join(parts, " "))
			return value.Undef
		},
	})

	root.Define("__needs_update", &value.NativeFunction{
		Name:  "__needs_update",
		Arity: 0,
		Fn: func([]value.Value) value.Value {
			pending := vm.needsUpdate
			vm.needsUpdate = false
			return value.Bool(pending)
		},
	})
	root.Define("__needs_draw", &value.NativeFunction{
		Name:  "__needs_draw",
		Arity: 0,
		Fn: func([]value.Value) value.Value {
			pending := vm.needsDraw
			vm.needsDraw = false
			return value.Bool(pending)
		},
	})
}
