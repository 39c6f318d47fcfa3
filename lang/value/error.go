package value

// Error wraps a message string. Errors are ordinary values that flow
// through the stack like any other; the VM never halts because of one.
// Operations on an Error return the Error itself, except Eq, Is, Not and
// Truthy (an Error is falsey).
type Error struct {
	Msg string
}

var _ Value = (*Error)(nil)

// NewError builds an Error value carrying msg.
func NewError(msg string) *Error {
	return &Error{Msg: msg}
}

func (e *Error) String() string { return e.Msg }
func (e *Error) Kind() string   { return "error" }
func (e *Error) Truthy() bool   { return false }
func (e *Error) Not() Value     { return Bool(true) }

// Every operation not explicitly defined on Error propagates the Error
// value itself, per spec §7 tier 2.
func (e *Error) Add(Value) Value     { return e }
func (e *Error) Sub(Value) Value     { return e }
func (e *Error) Mul(Value) Value     { return e }
func (e *Error) Div(Value) Value     { return e }
func (e *Error) FDiv(Value) Value    { return e }
func (e *Error) Mod(Value) Value     { return e }
func (e *Error) Negate() Value       { return e }
func (e *Error) Dot(Value) Value     { return e }
func (e *Error) Call([]Value) Value  { return e }

func (e *Error) Eq(y Value) Value {
	o, ok := y.(*Error)
	return Bool(ok && e.Msg == o.Msg)
}

func (e *Error) Is(y Value) Value {
	if t, ok := y.(*TypeValue); ok {
		return Bool(t.Target == "error")
	}
	return e
}
