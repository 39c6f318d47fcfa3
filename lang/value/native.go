package value

import "strconv"

// NativeFunction wraps a host-provided callable exposed to user code. Arity
// is the fixed number of arguments it accepts, or -1 if it is variadic.
type NativeFunction struct {
	Name  string
	Arity int
	Fn    func(args []Value) Value
}

var _ Value = (*NativeFunction)(nil)

func (n *NativeFunction) String() string { return "native function " + n.Name }
func (n *NativeFunction) Kind() string   { return "native_function" }
func (n *NativeFunction) Truthy() bool   { return true }
func (n *NativeFunction) Not() Value     { return Bool(false) }

func (n *NativeFunction) Eq(y Value) Value {
	o, ok := y.(*NativeFunction)
	return Bool(ok && n == o)
}

// Call checks arity (unless variadic) and invokes the host callable. Any
// host return that is not a Value is normalized to Undefined, per spec
// §4.1.
func (n *NativeFunction) Call(args []Value) Value {
	if n.Arity >= 0 && len(args) != n.Arity {
		return NewError(n.Name + ": expected " + strconv.Itoa(n.Arity) + " argument(s), got " + strconv.Itoa(len(args)))
	}
	if n.Fn == nil {
		return Undef
	}
	v := n.Fn(args)
	if v == nil {
		return Undef
	}
	return v
}

func (n *NativeFunction) Add(y Value) Value  { return unsupported(n.Kind(), "+", y) }
func (n *NativeFunction) Sub(y Value) Value  { return unsupported(n.Kind(), "-", y) }
func (n *NativeFunction) Mul(y Value) Value  { return unsupported(n.Kind(), "*", y) }
func (n *NativeFunction) Div(y Value) Value  { return unsupported(n.Kind(), "/", y) }
func (n *NativeFunction) FDiv(y Value) Value { return unsupported(n.Kind(), "//", y) }
func (n *NativeFunction) Mod(y Value) Value  { return unsupported(n.Kind(), "%", y) }
func (n *NativeFunction) Negate() Value      { return unsupported(n.Kind(), "unary -", nil) }
func (n *NativeFunction) Is(y Value) Value   { return unsupported(n.Kind(), "is", y) }
func (n *NativeFunction) Dot(y Value) Value  { return unsupported(n.Kind(), ".", y) }
