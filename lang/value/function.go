package value

// Function is a user-defined function: its name, its ordered parameter
// names, and its own flat bytecode array (lifted out of the enclosing
// function's code by the compiler, per spec §4.4's `fun` rule).
type Function struct {
	Name   string
	Params []string
	Code   []int
}

var _ Value = (*Function)(nil)

func (f *Function) String() string { return "function " + f.Name }
func (f *Function) Kind() string   { return "function" }
func (f *Function) Truthy() bool   { return true }
func (f *Function) Not() Value     { return Bool(false) }

func (f *Function) Eq(y Value) Value {
	o, ok := y.(*Function)
	return Bool(ok && f == o)
}

func (f *Function) Add(y Value) Value  { return unsupported(f.Kind(), "+", y) }
func (f *Function) Sub(y Value) Value  { return unsupported(f.Kind(), "-", y) }
func (f *Function) Mul(y Value) Value  { return unsupported(f.Kind(), "*", y) }
func (f *Function) Div(y Value) Value  { return unsupported(f.Kind(), "/", y) }
func (f *Function) FDiv(y Value) Value { return unsupported(f.Kind(), "//", y) }
func (f *Function) Mod(y Value) Value  { return unsupported(f.Kind(), "%", y) }
func (f *Function) Negate() Value      { return unsupported(f.Kind(), "unary -", nil) }
func (f *Function) Is(y Value) Value   { return unsupported(f.Kind(), "is", y) }
func (f *Function) Dot(y Value) Value  { return unsupported(f.Kind(), ".", y) }

// Call on a Function value is never invoked directly: the VM's CALL opcode
// performs the bytecode transfer instead (spec §4.1). Reaching this means
// a Function value was called outside of CALL, e.g. via a native callback
// holding a stray reference.
func (f *Function) Call(_ []Value) Value {
	return NewError("function " + f.Name + " cannot be called outside the bytecode CALL opcode")
}
