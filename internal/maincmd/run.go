package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/pebblescript/pebble/internal/driver"
	"github.com/pebblescript/pebble/internal/stubgame"
	"github.com/pebblescript/pebble/lang/vm"
)

// Run loads a single file (with the kernel loop appended) and drives it
// against a console-only stub of the game library (spec §6), for headless
// demoing/testing. It blocks until ctx is canceled (SIGINT), then stops
// the driver; a program that halts or faults on its own does not end the
// wait.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", file, err))
	}

	cfg, err := driver.LoadConfig()
	if err != nil {
		return printError(stdio, err)
	}

	m := vm.NewWithCaps(cfg.ValueStackCap, cfg.EnvStackCap)
	m.Out = stdio.Stdout
	game := stubgame.New(stdio.Stdout)
	m.AddLibrary("game", game.Bindings())

	if err := m.Load(string(src)); err != nil {
		return printError(stdio, err)
	}

	d := driver.New(m, cfg)
	d.Run()

	<-ctx.Done()
	d.Stop()

	if err := m.Err(); err != nil {
		return printError(stdio, err)
	}
	return nil
}
