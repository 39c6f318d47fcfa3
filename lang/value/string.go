package value

import "strings"

// String is the immutable character-sequence variant of Value.
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return string(s) }
func (s String) Kind() string   { return "string" }
func (s String) Truthy() bool   { return len(s) != 0 }
func (s String) Not() Value     { return Bool(len(s) == 0) }

func (s String) Add(y Value) Value {
	o, ok := y.(String)
	if !ok {
		return unsupported(s.Kind(), "+", y)
	}
	return s + o
}

func (s String) Eq(y Value) Value {
	o, ok := y.(String)
	if !ok {
		return NewError("cannot compare string to " + y.Kind())
	}
	return Bool(s == o)
}

func (s String) Lt(y Value) Value {
	o, ok := y.(String)
	if !ok {
		return NewError("cannot compare string to " + y.Kind())
	}
	return Bool(strings.Compare(string(s), string(o)) < 0)
}

func (s String) Gt(y Value) Value {
	o, ok := y.(String)
	if !ok {
		return NewError("cannot compare string to " + y.Kind())
	}
	return Bool(strings.Compare(string(s), string(o)) > 0)
}

// Dot with a Number is character indexing; out-of-bounds yields Error per
// spec §4.1.
func (s String) Dot(y Value) Value {
	n, ok := y.(Number)
	if !ok {
		return unsupported(s.Kind(), ".", y)
	}
	i := int(n)
	if n != Number(i) || i < 0 || i >= len(s) {
		return NewError("string index out of range")
	}
	return String(s[i])
}

func (s String) Sub(y Value) Value  { return unsupported(s.Kind(), "-", y) }
func (s String) Mul(y Value) Value  { return unsupported(s.Kind(), "*", y) }
func (s String) Div(y Value) Value  { return unsupported(s.Kind(), "/", y) }
func (s String) FDiv(y Value) Value { return unsupported(s.Kind(), "//", y) }
func (s String) Mod(y Value) Value  { return unsupported(s.Kind(), "%", y) }
func (s String) Negate() Value      { return unsupported(s.Kind(), "unary -", nil) }
func (s String) Is(y Value) Value   { return unsupported(s.Kind(), "is", y) }
func (s String) Call(_ []Value) Value { return unsupported(s.Kind(), "call", nil) }
