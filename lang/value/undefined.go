package value

// undef is the sole value of the Undefined variant.
type undef struct{}

// Undef is the singleton Undefined value.
var Undef Value = undef{}

func (undef) String() string { return "undefined" }
func (undef) Kind() string   { return "undefined" }
func (undef) Truthy() bool   { return false }
func (undef) Not() Value     { return Bool(true) }

func (u undef) Eq(y Value) Value {
	_, ok := y.(undef)
	return Bool(ok)
}

func (u undef) Add(y Value) Value  { return unsupported(u.Kind(), "+", y) }
func (u undef) Sub(y Value) Value  { return unsupported(u.Kind(), "-", y) }
func (u undef) Mul(y Value) Value  { return unsupported(u.Kind(), "*", y) }
func (u undef) Div(y Value) Value  { return unsupported(u.Kind(), "/", y) }
func (u undef) FDiv(y Value) Value { return unsupported(u.Kind(), "//", y) }
func (u undef) Mod(y Value) Value  { return unsupported(u.Kind(), "%", y) }
func (u undef) Negate() Value      { return unsupported(u.Kind(), "unary -", nil) }
func (u undef) Is(y Value) Value   { return unsupported(u.Kind(), "is", y) }
func (u undef) Dot(y Value) Value  { return unsupported(u.Kind(), ".", y) }
func (u undef) Call(_ []Value) Value { return unsupported(u.Kind(), "call", nil) }
