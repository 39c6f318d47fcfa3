package value

import "strconv"

// TypeValue wraps a built-in type tag and the caster used to convert other
// values to it. Calling a TypeValue performs a cast: identity if the
// argument is already of the target tag, otherwise the caster runs (which
// may itself return an Error).
type TypeValue struct {
	Target string
	Caster func(Value) Value
}

var _ Value = (*TypeValue)(nil)

func (t *TypeValue) String() string { return "type " + t.Target }
func (t *TypeValue) Kind() string   { return "type" }
func (t *TypeValue) Truthy() bool   { return true }
func (t *TypeValue) Not() Value     { return Bool(false) }

func (t *TypeValue) Eq(y Value) Value {
	o, ok := y.(*TypeValue)
	return Bool(ok && t.Target == o.Target)
}

// Is returns Bool(true) if v's Kind matches the target tag.
func (t *TypeValue) Is(v Value) Value {
	return Bool(v.Kind() == t.Target)
}

func (t *TypeValue) Call(args []Value) Value {
	if len(args) != 1 {
		return NewError("cast to " + t.Target + " expects exactly 1 argument, got " + strconv.Itoa(len(args)))
	}
	v := args[0]
	if v.Kind() == t.Target {
		return v
	}
	if t.Caster == nil {
		return NewError("no cast defined to " + t.Target)
	}
	return t.Caster(v)
}

func (t *TypeValue) Add(y Value) Value  { return unsupported(t.Kind(), "+", y) }
func (t *TypeValue) Sub(y Value) Value  { return unsupported(t.Kind(), "-", y) }
func (t *TypeValue) Mul(y Value) Value  { return unsupported(t.Kind(), "*", y) }
func (t *TypeValue) Div(y Value) Value  { return unsupported(t.Kind(), "/", y) }
func (t *TypeValue) FDiv(y Value) Value { return unsupported(t.Kind(), "//", y) }
func (t *TypeValue) Mod(y Value) Value  { return unsupported(t.Kind(), "%", y) }
func (t *TypeValue) Negate() Value      { return unsupported(t.Kind(), "unary -", nil) }
func (t *TypeValue) Dot(y Value) Value  { return unsupported(t.Kind(), ".", y) }

// Builtin type values for bool, number, string and function, with casts
// defined for the combinations spec §4.1 calls out; unreachable
// combinations produce Error.
var (
	BoolType     = &TypeValue{Target: "bool", Caster: castToBool}
	NumberType   = &TypeValue{Target: "number", Caster: castToNumber}
	StringType   = &TypeValue{Target: "string", Caster: castToString}
	FunctionType = &TypeValue{Target: "function", Caster: castToFunction}
)

func castToBool(v Value) Value {
	return Bool(v.Truthy())
}

func castToNumber(v Value) Value {
	s, ok := v.(String)
	if !ok {
		return NewError("cannot cast " + v.Kind() + " to number")
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return NewError("cannot cast " + strconv.Quote(string(s)) + " to number")
	}
	return Number(f)
}

func castToString(v Value) Value {
	return String(v.String())
}

func castToFunction(v Value) Value {
	return NewError("cannot cast " + v.Kind() + " to function")
}
