// Package driver runs a loaded VM to completion (or forever, for the
// kernel's update/draw loop) by calling MultiStep on a schedule, the way
// a real host would drive the VM from its own render/update ticks (spec
// §5). Config binds the tunables from the environment the same way the
// teacher's other example repos bind CLI/service config, using
// caarlos0/env rather than hand-rolled os.Getenv calls.
package driver

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the VM/driver tunables spec §5 calls out by name, bound
// from PEBBLE_-prefixed environment variables at CLI startup.
type Config struct {
	ValueStackCap  int           `env:"PEBBLE_VALUE_STACK_CAP" envDefault:"65536"`
	EnvStackCap    int           `env:"PEBBLE_ENV_STACK_CAP" envDefault:"256"`
	MultiStepBatch int           `env:"PEBBLE_MULTI_STEP_BATCH" envDefault:"160"`
	UpdateInterval time.Duration `env:"PEBBLE_UPDATE_INTERVAL" envDefault:"2ms"`
	DrawInterval   time.Duration `env:"PEBBLE_DRAW_INTERVAL" envDefault:"16ms"`
}

// LoadConfig parses Config from the environment, falling back to the
// struct tag defaults for anything unset.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
