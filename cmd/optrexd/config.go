package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/DrJosh9000/optrexlcd"
)

// Backends for the four display lines.
const (
	backendPeriph = "periph"
	backendRPIO   = "rpio"
	backendSim    = "sim"
)

// Pins names the pin used for each line. Names are passed to gpioreg.ByName
// for the periph backend, and are BCM numbers for the rpio backend.
type Pins struct {
	M, Shift, Latch, Din string
}

type config struct {
	Backend   string
	Pins      Pins
	Interval  time.Duration
	Listen    string
	LogFile   string
	LogStderr bool
	Mode      string
	Render    string
	Snapshot  string
}

func defaultConfig() config {
	return config{
		Backend:   backendPeriph,
		Pins:      Pins{M: "2", Shift: "3", Latch: "7", Din: "10"},
		Interval:  optrexlcd.DefaultInterval,
		Listen:    "localhost:5024",
		LogFile:   "/var/log/optrexd.log",
		LogStderr: true,
		Mode:      "idle",
		Render:    "none",
	}
}

type fileConfig struct {
	Backend    string   `toml:"backend"`
	Pins       filePins `toml:"pins"`
	Interval   string   `toml:"interval"`
	IntervalMS int64    `toml:"interval_ms"`
	Listen     string   `toml:"listen"`
	LogFile    string   `toml:"log_file"`
	LogStderr  bool     `toml:"log_stderr"`
	Mode       string   `toml:"mode"`
	Render     string   `toml:"render"`
	Snapshot   string   `toml:"snapshot"`
}

type filePins struct {
	M     string `toml:"m"`
	Shift string `toml:"shift"`
	Latch string `toml:"latch"`
	Din   string `toml:"din"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undec[0].String())
	}

	str := func(key, v string, dst *string) {
		if meta.IsDefined(strings.Split(key, ".")...) {
			*dst = strings.TrimSpace(v)
		}
	}
	str("backend", raw.Backend, &cfg.Backend)
	str("pins.m", raw.Pins.M, &cfg.Pins.M)
	str("pins.shift", raw.Pins.Shift, &cfg.Pins.Shift)
	str("pins.latch", raw.Pins.Latch, &cfg.Pins.Latch)
	str("pins.din", raw.Pins.Din, &cfg.Pins.Din)
	str("listen", raw.Listen, &cfg.Listen)
	str("log_file", raw.LogFile, &cfg.LogFile)
	str("mode", raw.Mode, &cfg.Mode)
	str("render", raw.Render, &cfg.Render)
	str("snapshot", raw.Snapshot, &cfg.Snapshot)

	if meta.IsDefined("log_stderr") {
		cfg.LogStderr = raw.LogStderr
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return config{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Interval = d
	}

	if meta.IsDefined("interval_ms") {
		cfg.Interval = time.Duration(raw.IntervalMS) * time.Millisecond
	}

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.Backend {
	case backendPeriph, backendRPIO, backendSim:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Mode {
	case "idle", "count", "cycle":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Render {
	case "none", "console", "termbox":
	default:
		return fmt.Errorf("unknown render %q", c.Render)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval %v is not positive", c.Interval)
	}
	if c.Backend != backendSim {
		for name, p := range map[string]string{"m": c.Pins.M, "shift": c.Pins.Shift, "latch": c.Pins.Latch, "din": c.Pins.Din} {
			if p == "" {
				return fmt.Errorf("pins.%s is not set", name)
			}
		}
	}
	return nil
}
