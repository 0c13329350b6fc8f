package main

import (
	"fmt"
	"log"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/DrJosh9000/optrexlcd/rpioline"
	"github.com/DrJosh9000/optrexlcd/sim"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// wire connects the driver's lines to the configured backend. For the sim
// backend it returns the simulated panel. The returned func releases the
// backend.
func wire(cfg config, d *optrexlcd.IM50240) (*sim.Panel, func(), error) {
	switch cfg.Backend {
	case backendSim:
		p := &sim.Panel{}
		p.Wire(d)
		log.Printf("Using %s", p)
		return p, func() {}, nil

	case backendRPIO:
		if err := rpioline.Open(); err != nil {
			return nil, nil, err
		}
		pins, err := byName(cfg.Pins, func(n string) (gpio.PinOut, error) {
			return rpioline.ByName(n)
		})
		if err != nil {
			rpioline.Close()
			return nil, nil, err
		}
		d.M, d.Shift, d.Latch, d.Din = pins[0], pins[1], pins[2], pins[3]
		log.Printf("Using go-rpio pins M=%s Shift=%s Latch=%s Din=%s", d.M, d.Shift, d.Latch, d.Din)
		return nil, func() {
			for _, p := range pins {
				p.Halt()
			}
			rpioline.Close()
		}, nil

	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("periph host init: %w", err)
		}
		pins, err := byName(cfg.Pins, func(n string) (gpio.PinOut, error) {
			p := gpioreg.ByName(n)
			if p == nil {
				return nil, fmt.Errorf("no gpio pin %q", n)
			}
			return p, nil
		})
		if err != nil {
			return nil, nil, err
		}
		d.M, d.Shift, d.Latch, d.Din = pins[0], pins[1], pins[2], pins[3]
		log.Printf("Using periph pins M=%s Shift=%s Latch=%s Din=%s", d.M, d.Shift, d.Latch, d.Din)
		return nil, func() {
			for _, p := range pins {
				p.Out(gpio.Low)
			}
		}, nil
	}
}

func byName(pins Pins, lookup func(string) (gpio.PinOut, error)) ([4]gpio.PinOut, error) {
	var out [4]gpio.PinOut
	for i, n := range []string{pins.M, pins.Shift, pins.Latch, pins.Din} {
		p, err := lookup(n)
		if err != nil {
			return out, err
		}
		out[i] = p
	}
	return out, nil
}
