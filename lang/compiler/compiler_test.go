package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblescript/pebble/lang/compiler"
	"github.com/pebblescript/pebble/lang/value"
)

func compile(t *testing.T, src string) *compiler.Program {
	t.Helper()
	p, err := compiler.New(src).Compile()
	require.NoError(t, err)
	return p
}

func TestCompileAtoms(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		code []int
	}{
		{"number", "42", []int{int(compiler.GET_CONST), 0, int(compiler.RETURN)}},
		{"string", `"hi"`, []int{int(compiler.GET_CONST), 0, int(compiler.RETURN)}},
		{"true", "true", []int{int(compiler.TRUE), int(compiler.RETURN)}},
		{"false", "false", []int{int(compiler.FALSE), int(compiler.RETURN)}},
		{"undefined", "undefined", []int{int(compiler.UNDEFINED), int(compiler.RETURN)}},
		{"ident", "x", []int{int(compiler.GET_VARIABLE), 0, int(compiler.RETURN)}},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			p := compile(t, tc.src)
			assert.Equal(t, tc.code, p.Code)
		})
	}
}

func TestCompileConstantInterning(t *testing.T) {
	p := compile(t, `(+ 1 (+ 1 "a"))`)
	require.Len(t, p.Constants, 2)
	assert.Equal(t, value.Number(1), p.Constants[0])
	assert.Equal(t, value.String("a"), p.Constants[1])
}

func TestCompileBinaryOps(t *testing.T) {
	cases := []struct {
		op   string
		want compiler.Opcode
	}{
		{"+", compiler.ADD},
		{"-", compiler.SUB},
		{"*", compiler.MUL},
		{"/", compiler.DIV},
		{"//", compiler.FLOOR_DIV},
		{"%", compiler.MOD},
		{"==", compiler.EQUAL},
		{"!=", compiler.NOT_EQUAL},
		{"<", compiler.LESS},
		{"<=", compiler.LESS_EQUAL},
		{">", compiler.GREATER},
		{">=", compiler.GREATER_EQUAL},
		{"is", compiler.IS},
		{"and", compiler.AND},
		{"or", compiler.OR},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			p := compile(t, "("+tc.op+" 1 2)")
			want := []int{
				int(compiler.GET_CONST), 0,
				int(compiler.GET_CONST), 1,
				int(tc.want),
				int(compiler.RETURN),
			}
			assert.Equal(t, want, p.Code)
		})
	}
}

func TestCompileUnaryNegateVsSubtract(t *testing.T) {
	unary := compile(t, "(- 1)")
	assert.Equal(t, []int{
		int(compiler.GET_CONST), 0,
		int(compiler.NEGATE),
		int(compiler.RETURN),
	}, unary.Code)

	binary := compile(t, "(- 1 2)")
	assert.Equal(t, []int{
		int(compiler.GET_CONST), 0,
		int(compiler.GET_CONST), 1,
		int(compiler.SUB),
		int(compiler.RETURN),
	}, binary.Code)
}

func TestCompileNot(t *testing.T) {
	p := compile(t, "(! true)")
	assert.Equal(t, []int{
		int(compiler.TRUE),
		int(compiler.NOT),
		int(compiler.RETURN),
	}, p.Code)
}

func TestCompileLet(t *testing.T) {
	p := compile(t, "(let x 5)")
	// the NAME is interned before the EXPR is compiled
	assert.Equal(t, []int{
		int(compiler.GET_CONST), 1,
		int(compiler.DEF_VARIABLE), 0,
		int(compiler.RETURN),
	}, p.Code)
	assert.Equal(t, value.String("x"), p.Constants[0])
	assert.Equal(t, value.Number(5), p.Constants[1])
}

func TestCompileAssignAndCompoundAssign(t *testing.T) {
	p := compile(t, "(= x 5)")
	assert.Equal(t, []int{
		int(compiler.GET_CONST), 1,
		int(compiler.SET_VARIABLE), 0,
		int(compiler.RETURN),
	}, p.Code)

	p = compile(t, "(+= x 5)")
	assert.Equal(t, []int{
		int(compiler.GET_VARIABLE), 0,
		int(compiler.GET_CONST), 1,
		int(compiler.ADD),
		int(compiler.SET_VARIABLE), 0,
		int(compiler.RETURN),
	}, p.Code)
}

func TestCompileCall(t *testing.T) {
	p := compile(t, `(print "hi" 2)`)
	assert.Equal(t, []int{
		int(compiler.GET_CONST), 1,
		int(compiler.GET_CONST), 2,
		int(compiler.CALL), 2, 0,
		int(compiler.RETURN),
	}, p.Code)
	assert.Equal(t, value.String("print"), p.Constants[0])
}

func TestCompileIfWithoutElse(t *testing.T) {
	p := compile(t, `(if true ((print 1)))`)

	// TRUE, JUMP_IF_FALSE, ... true body ..., RETURN
	require.True(t, len(p.Code) > 0)
	assert.Equal(t, int(compiler.TRUE), p.Code[0])
	assert.Equal(t, int(compiler.JUMP_IF_FALSE), p.Code[1])

	falseTarget := p.Code[2]
	resumeAt := 3
	landing := resumeAt + falseTarget
	assert.Equal(t, int(compiler.RETURN), p.Code[landing])
}

func TestCompileIfWithElse(t *testing.T) {
	p := compile(t, `(if true ((print 1)) ((print 2)))`)

	assert.Equal(t, int(compiler.TRUE), p.Code[0])
	assert.Equal(t, int(compiler.JUMP_IF_FALSE), p.Code[1])
	falseOff := p.Code[2]
	elseStart := 3 + falseOff

	// the instruction right before the else block must be the
	// unconditional JUMP that skips over it.
	assert.Equal(t, int(compiler.JUMP), p.Code[elseStart-2])
}

func TestCompileWhile(t *testing.T) {
	p := compile(t, `(while true ((print 1)))`)

	assert.Equal(t, int(compiler.TRUE), p.Code[0])
	assert.Equal(t, int(compiler.JUMP_IF_FALSE), p.Code[1])
	falseOff := p.Code[2]
	afterLoop := 3 + falseOff
	// the instruction right before the loop exit must be the backward JUMP.
	assert.Equal(t, int(compiler.JUMP), p.Code[afterLoop-2])
	backOff := p.Code[afterLoop-1]
	assert.Equal(t, 0, afterLoop+backOff) // jumps back to condition start
	assert.Equal(t, int(compiler.RETURN), p.Code[afterLoop])
}

func findFunction(t *testing.T, p *compiler.Program) *value.Function {
	t.Helper()
	for _, cst := range p.Constants {
		if fn, ok := cst.(*value.Function); ok {
			return fn
		}
	}
	t.Fatal("no function constant found")
	return nil
}

func TestCompileFun(t *testing.T) {
	p := compile(t, `(fun add (a b) ((return (+ a b))))`)

	fn := findFunction(t, p)
	assert.Equal(t, "add", fn.Name)
	// params are reversed so CALL's right-to-left pop binds source order
	assert.Equal(t, []string{"b", "a"}, fn.Params)
	assert.Contains(t, fn.Code, int(compiler.RETURN))

	// top level just builds the Function constant and binds its name
	fnIdx := -1
	for i, cst := range p.Constants {
		if cst == value.Value(fn) {
			fnIdx = i
		}
	}
	require.NotEqual(t, -1, fnIdx)
	assert.Equal(t, int(compiler.GET_CONST), p.Code[0])
	assert.Equal(t, fnIdx, p.Code[1])
	assert.Equal(t, int(compiler.DEF_VARIABLE), p.Code[2])
	assert.Equal(t, int(compiler.RETURN), p.Code[len(p.Code)-1])
}

func TestCompileFunImplicitReturn(t *testing.T) {
	p := compile(t, `(fun noop () ((print 1)))`)
	fn := findFunction(t, p)
	// falling off the end pushes Undefined then returns it
	n := len(fn.Code)
	require.True(t, n >= 2)
	assert.Equal(t, int(compiler.UNDEFINED), fn.Code[n-2])
	assert.Equal(t, int(compiler.RETURN), fn.Code[n-1])
}

func TestCompileReturnOutsideFunctionIsError(t *testing.T) {
	_, err := compiler.New(`(return 1)`).Compile()
	require.Error(t, err)
}

func TestCompileImport(t *testing.T) {
	p := compile(t, `(import math)`)
	assert.Equal(t, []int{
		int(compiler.IMPORT), 0,
		int(compiler.RETURN),
	}, p.Code)
	assert.Equal(t, value.String("math"), p.Constants[0])
}

func TestCompileUnbalancedParenthesis(t *testing.T) {
	_, err := compiler.New(`()`).Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unbalanced parenthesis")
}

func TestDasmRendersReadableOutput(t *testing.T) {
	p := compile(t, `(+ 1 2)`)
	out := compiler.Dasm(p)
	assert.Contains(t, out, "get_const")
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "return")
}
