// Package vm implements the stack machine that executes a compiled
// Program: a bounded value stack, a bounded env stack, a frame stack of
// (code, pc) pairs to resume on RETURN, the constant pool, and a library
// registry (spec §4.6). Execution is strictly single-threaded and
// cooperative — Step/MultiStep are the only ways bytecode runs; nothing
// here spawns goroutines or blocks (spec §5).
//
// The switch-dispatch shape is adapted from the teacher's
// lang/machine/machine.go run loop, narrowed to this language's much
// smaller opcode set and env-chain model (no locals array, cells,
// freevars, or defer/catch machinery — none of those exist in this
// language).
package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pebblescript/pebble/lang/compiler"
	"github.com/pebblescript/pebble/lang/env"
	"github.com/pebblescript/pebble/lang/value"
)

// Resource quotas, spec §5: both stacks silently drop overflowing pushes
// rather than growing unbounded or erroring.
const (
	MaxValueStack = 65536
	MaxEnvStack   = 256
)

// State is the VM's lifecycle state (spec §4.6).
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// VM is the bytecode interpreter for one loaded Program.
type VM struct {
	Out io.Writer // destination for the `print` builtin; defaults to os.Stdout

	valueStackCap int
	envStackCap   int

	valueStack []value.Value
	envStack   []*env.Env
	frames     []Frame

	constants []value.Value
	code      []int
	pc        int

	libraries map[string]*env.Env

	state   State
	halted  bool
	lastErr error
	fault   error

	needsUpdate bool
	needsDraw   bool
}

// New returns a VM with the default resource quotas (spec §5: 65,536-entry
// value stack, 256-frame env stack). Call Load before Step/Run.
func New() *VM {
	return NewWithCaps(MaxValueStack, MaxEnvStack)
}

// NewWithCaps returns a VM whose value-stack and env-stack quotas are
// overridden from the defaults, as bound by internal/driver.Config from
// environment variables rather than hardcoded — spec §5 states the quotas
// as fixed numbers, but SPEC_FULL.md's ambient-configuration section
// commits to making driver/VM tunables configurable at startup instead of
// baked in.
func NewWithCaps(valueStackCap, envStackCap int) *VM {
	return &VM{
		Out:           os.Stdout,
		valueStackCap: valueStackCap,
		envStackCap:   envStackCap,
		libraries:     make(map[string]*env.Env),
		state:         Stopped,
	}
}

// State reports the VM's current lifecycle state.
func (vm *VM) State() State { return vm.state }

// Err returns the error that halted the VM, if any (tier-3 "catastrophic"
// error per spec §7, or a compile error from Load).
func (vm *VM) Err() error { return vm.lastErr }

// Halted reports whether the loaded program's root frame reached RETURN.
func (vm *VM) Halted() bool { return vm.halted }

// Load compiles src (with the driver kernel loop appended, spec §6) and
// resets the VM to run it from the top. Registered libraries are kept
// across reloads; the global env is always created fresh.
func (vm *VM) Load(src string) error {
	prog, err := compiler.New(src + "\n" + kernelSource).Compile()
	if err != nil {
		vm.lastErr = err
		vm.state = Stopped
		return err
	}
	return vm.LoadProgram(prog)
}

// LoadProgram resets the VM to run an already-compiled Program as is,
// without the kernel loop that Load appends (used by tests that exercise
// the instruction set in isolation).
func (vm *VM) LoadProgram(prog *compiler.Program) error {
	vm.constants = prog.Constants
	vm.code = prog.Code
	vm.pc = 0
	vm.frames = nil
	vm.valueStack = nil
	vm.envStack = []*env.Env{env.New()}
	vm.halted = false
	vm.lastErr = nil
	vm.fault = nil
	vm.needsUpdate = false
	vm.needsDraw = false
	vm.state = Stopped
	vm.registerGlobals()
	return nil
}

// Run transitions the VM to Running; the driver is responsible for
// scheduling the update/draw ticks that actually advance execution via
// MultiStep (spec §5 — the VM itself never runs a background loop).
func (vm *VM) Run() {
	if !vm.halted && vm.lastErr == nil {
		vm.state = Running
	}
}

// Pause halts driver-driven execution but leaves all VM state intact.
func (vm *VM) Pause() {
	if vm.state == Running {
		vm.state = Paused
	}
}

// Stop clears scheduled execution and resets the program counter state,
// per spec §5's cancellation semantics. The compiled program, constants,
// and registered libraries are kept; the global env and stacks are reset.
func (vm *VM) Stop() {
	vm.state = Stopped
	if len(vm.frames) > 0 {
		vm.code = vm.frames[0].Code // stopped inside a call: back to the root code
	}
	vm.pc = 0
	vm.frames = nil
	vm.valueStack = nil
	vm.envStack = []*env.Env{env.New()}
	vm.halted = false
	vm.lastErr = nil
	vm.needsUpdate = false
	vm.needsDraw = false
	vm.registerGlobals()
}

// SetNeedsUpdate marks an update tick pending, for the driver's ~2ms
// ticker (spec §5) to call.
func (vm *VM) SetNeedsUpdate() { vm.needsUpdate = true }

// SetNeedsDraw marks a draw tick pending, for the driver's ~60Hz ticker
// (spec §5) to call.
func (vm *VM) SetNeedsDraw() { vm.needsDraw = true }

// Step executes a single instruction, halting or faulting the VM exactly
// as MultiStep(1) would. Exposed for single-instruction debugging/tests
// that want to observe the VM between every opcode, alongside the
// driver-facing MultiStep batch (spec §4.6's "Load/Step/Run/Pause/Stop"
// lifecycle).
func (vm *VM) Step() error {
	if vm.halted {
		return nil
	}
	if err := vm.step(); err != nil {
		vm.state = Stopped
		vm.lastErr = err
		return err
	}
	return nil
}

// MultiStep executes up to n instructions (the driver's update-tick
// batch, spec §5's "~160 bytecode instructions"), stopping early if the
// program halts or faults.
func (vm *VM) MultiStep(n int) error {
	for i := 0; i < n; i++ {
		if vm.halted {
			return nil
		}
		if err := vm.step(); err != nil {
			vm.state = Stopped
			vm.lastErr = err
			return err
		}
	}
	return nil
}

func (vm *VM) step() error {
	if vm.halted {
		return nil
	}
	if vm.pc >= len(vm.code) {
		vm.halted = true
		return nil
	}

	op := compiler.Opcode(vm.code[vm.pc])
	vm.pc++
	vm.fault = nil

	switch op {
	case compiler.GET_CONST:
		idx := vm.readOperand()
		vm.push(vm.constant(idx))

	case compiler.DEF_VARIABLE:
		idx := vm.readOperand()
		name := vm.constantName(idx)
		v := vm.pop()
		vm.topEnv().Define(name, v)

	case compiler.GET_VARIABLE:
		idx := vm.readOperand()
		name := vm.constantName(idx)
		v, _ := vm.lookup(name)
		vm.push(v)

	case compiler.SET_VARIABLE:
		idx := vm.readOperand()
		name := vm.constantName(idx)
		v := vm.pop()
		vm.setVariable(name, v)

	case compiler.TRUE:
		vm.push(value.Bool(true))
	case compiler.FALSE:
		vm.push(value.Bool(false))
	case compiler.UNDEFINED:
		vm.push(value.Undef)
	case compiler.POP:
		vm.pop()
	case compiler.DUP:
		if n := len(vm.valueStack); n > 0 {
			vm.push(vm.valueStack[n-1])
		}

	case compiler.EQUAL:
		vm.binary(func(a, b value.Value) value.Value { return a.Eq(b) })
	case compiler.NOT_EQUAL:
		vm.binary(value.Neq)
	case compiler.GREATER:
		vm.binary(value.Gt)
	case compiler.GREATER_EQUAL:
		vm.binary(value.Gteq)
	case compiler.LESS:
		vm.binary(value.Lt)
	case compiler.LESS_EQUAL:
		vm.binary(value.Lteq)
	case compiler.ADD:
		vm.binary(func(a, b value.Value) value.Value { return a.Add(b) })
	case compiler.SUB:
		vm.binary(func(a, b value.Value) value.Value { return a.Sub(b) })
	case compiler.MUL:
		vm.binary(func(a, b value.Value) value.Value { return a.Mul(b) })
	case compiler.DIV:
		vm.binary(func(a, b value.Value) value.Value { return a.Div(b) })
	case compiler.FLOOR_DIV:
		vm.binary(func(a, b value.Value) value.Value { return a.FDiv(b) })
	case compiler.MOD:
		vm.binary(func(a, b value.Value) value.Value { return a.Mod(b) })
	case compiler.DOT:
		vm.binary(func(a, b value.Value) value.Value { return a.Dot(b) })
	case compiler.IS:
		vm.binary(func(a, b value.Value) value.Value { return a.Is(b) })

	case compiler.AND:
		// pop both operands unconditionally per spec's documented
		// non-short-circuit semantic — see DESIGN.md.
		vm.binary(func(a, b value.Value) value.Value {
			if !a.Truthy() {
				return a
			}
			return b
		})
	case compiler.OR:
		vm.binary(func(a, b value.Value) value.Value {
			if a.Truthy() {
				return a
			}
			return b
		})

	case compiler.NEGATE:
		a := vm.pop()
		vm.push(a.Negate())
	case compiler.NOT:
		a := vm.pop()
		vm.push(a.Not())

	case compiler.JUMP:
		off := vm.readOperand()
		vm.pc += off
	case compiler.JUMP_IF_FALSE:
		off := vm.readOperand()
		c := vm.pop()
		if !c.Truthy() {
			vm.pc += off
		}

	case compiler.CALL:
		argc := vm.readOperand()
		nameIdx := vm.readOperand()
		vm.call(argc, nameIdx)

	case compiler.RETURN:
		vm.doReturn()

	case compiler.IMPORT:
		idx := vm.readOperand()
		vm.doImport(idx)

	default:
		vm.fault = fmt.Errorf("illegal opcode %d at pc %d", int(op), vm.pc-1)
	}

	return vm.fault
}

func (vm *VM) binary(f func(a, b value.Value) value.Value) {
	b := vm.pop()
	a := vm.pop()
	vm.push(f(a, b))
}

func (vm *VM) push(v value.Value) {
	if len(vm.valueStack) >= vm.valueStackCap {
		return // silently dropped, spec §5
	}
	vm.valueStack = append(vm.valueStack, v)
}

func (vm *VM) pop() value.Value {
	n := len(vm.valueStack)
	if n == 0 {
		vm.fault = errors.New("value stack underflow")
		return value.Undef
	}
	n--
	v := vm.valueStack[n]
	vm.valueStack = vm.valueStack[:n]
	return v
}

func (vm *VM) readOperand() int {
	if vm.pc >= len(vm.code) {
		vm.fault = errors.New("truncated instruction")
		return 0
	}
	v := vm.code[vm.pc]
	vm.pc++
	return v
}

func (vm *VM) constant(idx int) value.Value {
	if idx < 0 || idx >= len(vm.constants) {
		vm.fault = fmt.Errorf("constant index %d out of range", idx)
		return value.Undef
	}
	return vm.constants[idx]
}

func (vm *VM) constantName(idx int) string {
	c := vm.constant(idx)
	s, ok := c.(value.String)
	if !ok {
		if vm.fault == nil {
			vm.fault = fmt.Errorf("constant %d is not a name", idx)
		}
		return ""
	}
	return string(s)
}

func (vm *VM) topEnv() *env.Env {
	return vm.envStack[len(vm.envStack)-1]
}

// lookup scans the env stack from innermost to outermost, per spec
// §4.6's variable-lookup rule.
func (vm *VM) lookup(name string) (value.Value, bool) {
	for i := len(vm.envStack) - 1; i >= 0; i-- {
		if vm.envStack[i].Has(name) {
			return vm.envStack[i].Get(name), true
		}
	}
	return value.Undef, false
}

// setVariable assigns in the nearest enclosing env that already defines
// name, else defines it in the top (innermost) env.
func (vm *VM) setVariable(name string, v value.Value) {
	for i := len(vm.envStack) - 1; i >= 0; i-- {
		if vm.envStack[i].Has(name) {
			vm.envStack[i].Set(name, v)
			return
		}
	}
	vm.topEnv().Set(name, v)
}

// call resolves the named callable and either transfers into its
// bytecode (Function) or invokes it synchronously through its own Call
// method: a NativeFunction runs its host callable, a Type casts its
// argument, and every other Value yields an Error value (spec §4.1).
func (vm *VM) call(argc, nameIdx int) {
	name := vm.constantName(nameIdx)
	callee, _ := vm.lookup(name)

	if fn, ok := callee.(*value.Function); ok {
		if len(fn.Params) != argc {
			for i := 0; i < argc; i++ {
				vm.pop() // unwind already-evaluated args, spec's resolved open question
			}
			vm.push(value.NewError(fmt.Sprintf(
				"%s: expected %d argument(s), got %d", name, len(fn.Params), argc)))
			return
		}

		newEnv := env.New()
		for _, pname := range fn.Params {
			newEnv.Define(pname, vm.pop())
		}

		envDepth := len(vm.envStack)
		if len(vm.envStack) < vm.envStackCap {
			vm.envStack = append(vm.envStack, newEnv)
		}

		vm.frames = append(vm.frames, Frame{Code: vm.code, PC: vm.pc, EnvDepth: envDepth})
		vm.code = fn.Code
		vm.pc = 0
		return
	}

	args := make([]value.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = vm.pop()
	}
	vm.push(callee.Call(args))
}

func (vm *VM) doReturn() {
	if len(vm.frames) == 0 {
		vm.halted = true
		return
	}
	result := vm.pop()
	frame := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.envStack = vm.envStack[:frame.EnvDepth]
	vm.code = frame.Code
	vm.pc = frame.PC
	vm.push(result)
}

func (vm *VM) doImport(idx int) {
	name := vm.constantName(idx)
	lib, ok := vm.libraries[name]
	if !ok {
		vm.fault = fmt.Errorf("import: unknown library %q", name)
		return
	}
	vm.topEnv().MergeFrom(lib)
}
