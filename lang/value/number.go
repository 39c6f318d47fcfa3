package value

import (
	"math"
	"strconv"
	"strings"
)

// Number is the numeric variant of Value, wrapping an IEEE-754 double.
type Number float64

var (
	_ Value   = Number(0)
	_ Ordered = Number(0)
)

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (n Number) Kind() string { return "number" }
func (n Number) Truthy() bool { return n != 0 }
func (n Number) Not() Value   { return Bool(n == 0) }

func (n Number) Add(y Value) Value {
	switch o := y.(type) {
	case Number:
		return n + o
	}
	return unsupported(n.Kind(), "+", y)
}

func (n Number) Sub(y Value) Value {
	if o, ok := y.(Number); ok {
		return n - o
	}
	return unsupported(n.Kind(), "-", y)
}

// Mul of a Number by a String repeats the string n times, per spec §4.1.
func (n Number) Mul(y Value) Value {
	switch o := y.(type) {
	case Number:
		return n * o
	case String:
		if n < 0 || n != Number(int(n)) {
			return NewError("repeat count must be a non-negative integer")
		}
		return String(strings.Repeat(string(o), int(n)))
	}
	return unsupported(n.Kind(), "*", y)
}

func (n Number) Div(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return unsupported(n.Kind(), "/", y)
	}
	if o == 0 {
		return NewError("division by zero")
	}
	return n / o
}

func (n Number) FDiv(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return unsupported(n.Kind(), "//", y)
	}
	if o == 0 {
		return NewError("division by zero")
	}
	return Number(math.Floor(float64(n) / float64(o)))
}

func (n Number) Mod(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return unsupported(n.Kind(), "%", y)
	}
	if o == 0 {
		return NewError("division by zero")
	}
	return Number(math.Mod(float64(n), float64(o)))
}

func (n Number) Negate() Value { return -n }

func (n Number) Eq(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return NewError("cannot compare number to " + y.Kind())
	}
	return Bool(n == o)
}

func (n Number) Lt(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return NewError("cannot compare number to " + y.Kind())
	}
	return Bool(n < o)
}

func (n Number) Gt(y Value) Value {
	o, ok := y.(Number)
	if !ok {
		return NewError("cannot compare number to " + y.Kind())
	}
	return Bool(n > o)
}

func (n Number) Is(y Value) Value     { return unsupported(n.Kind(), "is", y) }
func (n Number) Dot(y Value) Value    { return unsupported(n.Kind(), ".", y) }
func (n Number) Call(_ []Value) Value { return unsupported(n.Kind(), "call", nil) }
