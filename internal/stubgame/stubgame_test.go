package stubgame_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblescript/pebble/internal/stubgame"
	"github.com/pebblescript/pebble/lang/compiler"
	"github.com/pebblescript/pebble/lang/vm"
)

func TestStubGameDrawCallsAreLogged(t *testing.T) {
	var gameOut bytes.Buffer
	game := stubgame.New(&gameOut)

	prog, err := compiler.New(`
(import game)
(fill_color 255 0 0)
(draw_rect 1 2 3 4)
(draw_text 5 6 "hi")
(clear)
`).Compile()
	require.NoError(t, err)

	var vmOut bytes.Buffer
	m := vm.New()
	m.Out = &vmOut
	require.NoError(t, m.LoadProgram(prog))
	m.AddLibrary("game", game.Bindings())
	require.NoError(t, m.MultiStep(100))

	out := gameOut.String()
	assert.Contains(t, out, "fill_color(255, 0, 0)")
	assert.Contains(t, out, "draw_rect(1, 2, 3, 4)")
	assert.Contains(t, out, `draw_text(5, 6, "hi")`)
	assert.Contains(t, out, "clear()")
}

func TestStubGameIsKeyPressedReflectsHostState(t *testing.T) {
	var gameOut bytes.Buffer
	game := stubgame.New(&gameOut)
	game.SetKeyPressed("ArrowUp", true)

	prog, err := compiler.New(`
(import game)
(print (is_key_pressed "ArrowUp"))
(print (is_key_pressed "ArrowDown"))
`).Compile()
	require.NoError(t, err)

	var vmOut bytes.Buffer
	m := vm.New()
	m.Out = &vmOut
	require.NoError(t, m.LoadProgram(prog))
	m.AddLibrary("game", game.Bindings())
	require.NoError(t, m.MultiStep(100))

	assert.Equal(t, "true\nfalse\n", vmOut.String())
}

func TestStubGameBadArgumentTypeYieldsErrorValue(t *testing.T) {
	var gameOut bytes.Buffer
	game := stubgame.New(&gameOut)

	prog, err := compiler.New(`
(import game)
(print (fill_color_css 1))
`).Compile()
	require.NoError(t, err)

	var vmOut bytes.Buffer
	m := vm.New()
	m.Out = &vmOut
	require.NoError(t, m.LoadProgram(prog))
	m.AddLibrary("game", game.Bindings())
	require.NoError(t, m.MultiStep(100))

	assert.Contains(t, vmOut.String(), "fill_color_css: expected a string")
}
