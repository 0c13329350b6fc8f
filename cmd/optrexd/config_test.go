package main

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, defaultConfig())
	assert.NilError(t, cfg.validate())
}

func TestLoadConfigSim(t *testing.T) {
	cfg, err := loadConfig("testdata/sim.toml")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, backendSim)
	assert.Equal(t, cfg.Interval, 4*time.Millisecond)
	assert.Equal(t, cfg.Listen, "")
	assert.Equal(t, cfg.LogFile, "")
	assert.Equal(t, cfg.LogStderr, true)
	assert.Equal(t, cfg.Mode, "count")
	assert.Equal(t, cfg.Render, "console")
	assert.Equal(t, cfg.Snapshot, "/tmp/optrexd.png")
	assert.DeepEqual(t, cfg.Pins, defaultConfig().Pins)
}

func TestLoadConfigRPIO(t *testing.T) {
	cfg, err := loadConfig("testdata/rpio.toml")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, backendRPIO)
	assert.Equal(t, cfg.Interval, 5*time.Millisecond)
	assert.Equal(t, cfg.LogStderr, false)
	assert.DeepEqual(t, cfg.Pins, Pins{M: "17", Shift: "27", Latch: "22", Din: "23"})
	assert.Equal(t, cfg.Listen, defaultConfig().Listen)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"testdata/bad_backend.toml", `unknown backend "spi"`},
		{"testdata/unknown_key.toml", `unknown key "refresh"`},
		{"testdata/bad_interval.toml", "parse interval"},
		{"testdata/missing.toml", "load config"},
	}
	for _, test := range tests {
		_, err := loadConfig(test.path)
		assert.ErrorContains(t, err, test.want, test.path)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Pins.Latch = ""
	assert.ErrorContains(t, cfg.validate(), "pins.latch")

	cfg.Backend = backendSim
	assert.NilError(t, cfg.validate())

	cfg.Mode = "dance"
	assert.ErrorContains(t, cfg.validate(), "unknown mode")

	cfg = defaultConfig()
	cfg.Render = "braille"
	assert.ErrorContains(t, cfg.validate(), "unknown render")

	cfg = defaultConfig()
	cfg.Interval = 0
	assert.ErrorContains(t, cfg.validate(), "not positive")
}
