package value

// Bool is the boolean variant of Value.
type Bool bool

var (
	_ Value = Bool(false)
)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Kind() string  { return "bool" }
func (b Bool) Truthy() bool  { return bool(b) }
func (b Bool) Not() Value    { return Bool(!b) }

func (b Bool) Eq(y Value) Value {
	o, ok := y.(Bool)
	if !ok {
		return NewError("cannot compare bool to " + y.Kind())
	}
	return Bool(b == o)
}

func (b Bool) Add(y Value) Value    { return unsupported(b.Kind(), "+", y) }
func (b Bool) Sub(y Value) Value    { return unsupported(b.Kind(), "-", y) }
func (b Bool) Mul(y Value) Value    { return unsupported(b.Kind(), "*", y) }
func (b Bool) Div(y Value) Value    { return unsupported(b.Kind(), "/", y) }
func (b Bool) FDiv(y Value) Value   { return unsupported(b.Kind(), "//", y) }
func (b Bool) Mod(y Value) Value    { return unsupported(b.Kind(), "%", y) }
func (b Bool) Negate() Value        { return unsupported(b.Kind(), "unary -", nil) }
func (b Bool) Is(y Value) Value     { return unsupported(b.Kind(), "is", y) }
func (b Bool) Dot(y Value) Value    { return unsupported(b.Kind(), ".", y) }
func (b Bool) Call(_ []Value) Value { return unsupported(b.Kind(), "call", nil) }
