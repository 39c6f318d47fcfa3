package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblescript/pebble/lang/compiler"
	"github.com/pebblescript/pebble/lang/value"
	"github.com/pebblescript/pebble/lang/vm"
)

// run compiles src (no kernel appended — LoadProgram bypasses Load/kernel
// so these tests exercise the instruction set in isolation) and drives it
// to completion, failing the test if it doesn't halt within budget steps.
func run(t *testing.T, src string, budget int) (*vm.VM, string) {
	t.Helper()
	prog, err := compiler.New(src).Compile()
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New()
	m.Out = &out
	require.NoError(t, m.LoadProgram(prog))

	require.NoError(t, m.MultiStep(budget))
	require.True(t, m.Halted(), "program did not halt within step budget")
	require.NoError(t, m.Err())
	return m, out.String()
}

func TestVMAddAndPrint(t *testing.T) {
	_, out := run(t, `(print (+ 1 2))`, 100)
	assert.Equal(t, "3\n", out)
}

func TestVMAssignment(t *testing.T) {
	_, out := run(t, `(let x 10) (= x (* x 2)) (print x)`, 100)
	assert.Equal(t, "20\n", out)
}

func TestVMIfElse(t *testing.T) {
	_, out := run(t, `(if (> 3 2) ((print "y")) ((print "n")))`, 100)
	assert.Equal(t, "y\n", out)

	_, out = run(t, `(if (> 2 3) ((print "y")) ((print "n")))`, 100)
	assert.Equal(t, "n\n", out)
}

func TestVMWhileLoop(t *testing.T) {
	_, out := run(t, `(let i 0) (while (< i 3) ((print i) (+= i 1)))`, 500)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestVMFunctionCallWithReturn(t *testing.T) {
	_, out := run(t, `(fun sq (n) ((return (* n n)))) (print (sq 5))`, 200)
	assert.Equal(t, "25\n", out)
}

func TestVMStringIndexing(t *testing.T) {
	_, out := run(t, `(print (. "abc" 1))`, 100)
	assert.Equal(t, "b\n", out)
}

func TestVMStringIndexOutOfRangeIsErrorValueNotCrash(t *testing.T) {
	m, out := run(t, `(print (. "abc" 9))`, 100)
	assert.Contains(t, out, "string index out of range")
	assert.True(t, m.Halted())
	assert.NoError(t, m.Err())
}

func TestVMCallArityMismatchYieldsErrorAndUnwindsStack(t *testing.T) {
	_, out := run(t, `(fun add (a b) ((return (+ a b)))) (print (add 1))`, 200)
	assert.Contains(t, out, "expected 2 argument(s), got 1")
}

func TestVMUndefinedVariableReadsAsUndefined(t *testing.T) {
	_, out := run(t, `(print nope)`, 100)
	assert.Equal(t, "undefined\n", out)
}

func TestVMAndOrNonShortCircuit(t *testing.T) {
	// both operands are evaluated even though `and`'s result is
	// determined by the first falsey operand (spec's documented
	// non-short-circuit semantic).
	_, out := run(t, `(print (and false (print "evaluated")))`, 200)
	assert.Contains(t, out, "evaluated")
}

func TestVMRecursiveFunctionCall(t *testing.T) {
	src := `
(fun fact (n) (
  (if (<= n 1)
    ((return 1))
    ((return (* n (fact (- n 1))))))))
(print (fact 5))
`
	_, out := run(t, src, 2000)
	assert.Equal(t, "120\n", out)
}

func TestVMStepExecutesOneInstructionAtATime(t *testing.T) {
	prog, err := compiler.New(`(print 1)`).Compile()
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New()
	m.Out = &out
	require.NoError(t, m.LoadProgram(prog))

	require.NoError(t, m.Step()) // GET_CONST 1
	assert.False(t, m.Halted())
	assert.Empty(t, out.String())

	require.NoError(t, m.Step()) // CALL print: native functions run synchronously
	assert.Equal(t, "1\n", out.String())
	assert.False(t, m.Halted())

	require.NoError(t, m.Step()) // RETURN at the root frame halts
	assert.True(t, m.Halted())

	require.NoError(t, m.Step()) // stepping a halted VM is a no-op
	assert.True(t, m.Halted())
}

func TestVMImportMergesLibraryIntoEnv(t *testing.T) {
	prog, err := compiler.New(`(import math) (print (pi))`).Compile()
	require.NoError(t, err)

	var out bytes.Buffer
	m := vm.New()
	m.Out = &out
	require.NoError(t, m.LoadProgram(prog))
	m.AddLibrary("math", map[string]value.Value{
		"pi": &value.NativeFunction{Name: "pi", Arity: 0, Fn: func([]value.Value) value.Value {
			return value.Number(3.14)
		}},
	})

	require.NoError(t, m.MultiStep(100))
	assert.Equal(t, "3.14\n", out.String())
}

func TestVMImportUnknownLibraryHalts(t *testing.T) {
	prog, err := compiler.New(`(import nope)`).Compile()
	require.NoError(t, err)

	m := vm.New()
	require.NoError(t, m.LoadProgram(prog))
	err = m.MultiStep(10)
	require.Error(t, err)
	assert.Equal(t, vm.Stopped, m.State())
}

func TestVMKernelLoopCallsUpdateAndDraw(t *testing.T) {
	var out bytes.Buffer
	m := vm.New()
	m.Out = &out
	require.NoError(t, m.Load(`
(let ticks 0)
(fun update () ((+= ticks 1) (print "update" ticks)))
(fun draw () ((print "draw")))
`))

	m.SetNeedsUpdate()
	require.NoError(t, m.MultiStep(60))
	assert.Contains(t, out.String(), "update 1")

	out.Reset()
	m.SetNeedsDraw()
	require.NoError(t, m.MultiStep(60))
	assert.Contains(t, out.String(), "draw")
}
