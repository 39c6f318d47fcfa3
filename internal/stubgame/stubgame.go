// Package stubgame is a console-only stand-in for the host game library
// spec §6 requires the embedding application to register under the
// `game` import name. It prints every draw call to an io.Writer and
// tracks a host-settable key-state map for is_key_pressed, so `pebble
// run` can execute update/draw programs end-to-end without a real
// renderer.
package stubgame

import (
	"fmt"
	"io"
	"sync"

	"github.com/pebblescript/pebble/lang/value"
)

// Game is the stub implementation of spec §6's game library contract.
type Game struct {
	Out io.Writer

	mu   sync.Mutex
	keys map[string]bool
}

// New returns a Game that writes draw calls to out.
func New(out io.Writer) *Game {
	return &Game{Out: out, keys: make(map[string]bool)}
}

// SetKeyPressed records code's pressed state, for a test or a headless
// driver loop to simulate input. The VM only ever reads this map via
// is_key_pressed, per spec §5's "input events ... recorded by the host".
func (g *Game) SetKeyPressed(code string, pressed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.keys[code] = pressed
}

func (g *Game) log(format string, args ...any) {
	fmt.Fprintf(g.Out, format+"\n", args...)
}

func number(v value.Value) (float64, bool) {
	n, ok := v.(value.Number)
	return float64(n), ok
}

func str(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	return string(s), ok
}

// Bindings returns the `name -> NativeFunction` map to register with
// VM.AddLibrary("game", ...).
func (g *Game) Bindings() map[string]value.Value {
	return map[string]value.Value{
		"fill_color": &value.NativeFunction{Name: "fill_color", Arity: 3, Fn: func(args []value.Value) value.Value {
			r, ok1 := number(args[0])
			gr, ok2 := number(args[1])
			b, ok3 := number(args[2])
			if !ok1 || !ok2 || !ok3 {
				return value.NewError("fill_color: expected 3 numbers")
			}
			g.log("fill_color(%v, %v, %v)", r, gr, b)
			return value.Undef
		}},
		"fill_color_css": &value.NativeFunction{Name: "fill_color_css", Arity: 1, Fn: func(args []value.Value) value.Value {
			css, ok := str(args[0])
			if !ok {
				return value.NewError("fill_color_css: expected a string")
			}
			g.log("fill_color_css(%s)", css)
			return value.Undef
		}},
		"draw_rect": &value.NativeFunction{Name: "draw_rect", Arity: 4, Fn: func(args []value.Value) value.Value {
			x, ok1 := number(args[0])
			y, ok2 := number(args[1])
			w, ok3 := number(args[2])
			h, ok4 := number(args[3])
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return value.NewError("draw_rect: expected 4 numbers")
			}
			g.log("draw_rect(%v, %v, %v, %v)", x, y, w, h)
			return value.Undef
		}},
		"draw_text": &value.NativeFunction{Name: "draw_text", Arity: 3, Fn: func(args []value.Value) value.Value {
			x, ok1 := number(args[0])
			y, ok2 := number(args[1])
			text, ok3 := str(args[2])
			if !ok1 || !ok2 || !ok3 {
				return value.NewError("draw_text: expected (number, number, string)")
			}
			g.log("draw_text(%v, %v, %q)", x, y, text)
			return value.Undef
		}},
		"set_font_size": &value.NativeFunction{Name: "set_font_size", Arity: 1, Fn: func(args []value.Value) value.Value {
			n, ok := number(args[0])
			if !ok {
				return value.NewError("set_font_size: expected a number")
			}
			g.log("set_font_size(%v)", n)
			return value.Undef
		}},
		"set_font_family": &value.NativeFunction{Name: "set_font_family", Arity: 1, Fn: func(args []value.Value) value.Value {
			s, ok := str(args[0])
			if !ok {
				return value.NewError("set_font_family: expected a string")
			}
			g.log("set_font_family(%s)", s)
			return value.Undef
		}},
		"set_font_style": &value.NativeFunction{Name: "set_font_style", Arity: 1, Fn: func(args []value.Value) value.Value {
			s, ok := str(args[0])
			if !ok {
				return value.NewError("set_font_style: expected a string")
			}
			g.log("set_font_style(%s)", s)
			return value.Undef
		}},
		"clear": &value.NativeFunction{Name: "clear", Arity: 0, Fn: func([]value.Value) value.Value {
			g.log("clear()")
			return value.Undef
		}},
		"is_key_pressed": &value.NativeFunction{Name: "is_key_pressed", Arity: 1, Fn: func(args []value.Value) value.Value {
			code, ok := str(args[0])
			if !ok {
				return value.NewError("is_key_pressed: expected a string")
			}
			g.mu.Lock()
			pressed := g.keys[code]
			g.mu.Unlock()
			return value.Bool(pressed)
		}},
	}
}
