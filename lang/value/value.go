// Package value implements the runtime value model: a closed sum type of
// Bool, Number, String, Function, NativeFunction, Type, Undefined and Error,
// each supporting a uniform operation set that returns a Value rather than
// a Go error for unsupported combinations.
//
// The dispatch shape (one file per variant, a common interface, per-variant
// method implementations with "return Error(...)" as the default) mirrors
// the teacher's lang/types package; the operation set itself comes from
// the arithmetic/comparison/indexing/calling contract this language
// specifies instead of the teacher's starlark-derived one.
package value

// Value is implemented by every runtime value of the language.
type Value interface {
	String() string
	Kind() string
	Truthy() bool

	Add(Value) Value
	Sub(Value) Value
	Mul(Value) Value
	Div(Value) Value
	FDiv(Value) Value
	Mod(Value) Value
	Negate() Value
	Not() Value
	Eq(Value) Value
	Is(Value) Value
	Dot(Value) Value
	Call(args []Value) Value
}

// Neq, Lteq and Gteq are defined uniformly for every Value in terms of Eq,
// Lt and Gt, short-circuiting on Error per the spec.
func Neq(a, b Value) Value {
	r := a.Eq(b)
	if IsError(r) {
		return r
	}
	return r.Not()
}

func Lteq(a, b Value) Value {
	r := Gt(a, b)
	if IsError(r) {
		return r
	}
	return r.Not()
}

func Gteq(a, b Value) Value {
	r := Lt(a, b)
	if IsError(r) {
		return r
	}
	return r.Not()
}

// Ordered is implemented by values that support Lt/Gt comparison.
type Ordered interface {
	Value
	Lt(Value) Value
	Gt(Value) Value
}

// Lt compares a and b if both support ordering, returning an Error value
// otherwise.
func Lt(a, b Value) Value {
	if o, ok := a.(Ordered); ok {
		return o.Lt(b)
	}
	return NewError(a.Kind() + " does not support ordering")
}

// Gt compares a and b if both support ordering, returning an Error value
// otherwise.
func Gt(a, b Value) Value {
	if o, ok := a.(Ordered); ok {
		return o.Gt(b)
	}
	return NewError(a.Kind() + " does not support ordering")
}

// IsError reports whether v is an *Error value.
func IsError(v Value) bool {
	_, ok := v.(*Error)
	return ok
}

// unsupported builds the uniform Error value returned by every variant's
// default implementation of an operation it does not define.
func unsupported(kind, op string, y Value) Value {
	other := ""
	if y != nil {
		other = " and " + y.Kind()
	}
	return NewError("unsupported operation " + op + " on " + kind + other)
}
