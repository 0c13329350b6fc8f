// Package rpioline exposes Raspberry Pi GPIO pins driven by go-rpio as
// gpio.PinOut, for hosts where periph's own drivers are not wanted.
package rpioline

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/stianeikeland/go-rpio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned by Pin.PWM.
var ErrNotImplemented = errors.New("rpioline: not implemented")

// Open maps the GPIO registers. Call it once before using any Pin.
func Open() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("rpioline: %w", err)
	}
	return nil
}

// Close unmaps the GPIO registers.
func Close() error {
	return rpio.Close()
}

// Pin is a BCM GPIO pin used as an output.
type Pin struct {
	pin rpio.Pin
}

// New returns the BCM pin n, set as an output.
func New(n int) *Pin {
	p := &Pin{pin: rpio.Pin(n)}
	p.pin.Output()
	return p
}

// ByName parses a BCM pin number, as written in a config file.
func ByName(name string) (*Pin, error) {
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 53 {
		return nil, fmt.Errorf("rpioline: invalid pin %q", name)
	}
	return New(n), nil
}

// Halt implements conn.Resource. It leaves the pin low.
func (p *Pin) Halt() error {
	p.pin.Low()
	return nil
}

// Name returns the name of the GPIO pin, e.g. "GPIO17".
func (p *Pin) Name() string {
	return "GPIO" + strconv.Itoa(int(p.pin))
}

// Number returns the BCM number of the GPIO pin.
func (p *Pin) Number() int {
	return int(p.pin)
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out writes the level to the pin.
func (p *Pin) Out(l gpio.Level) error {
	if l {
		p.pin.High()
	} else {
		p.pin.Low()
	}
	return nil
}

// Not implemented.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *Pin) String() string {
	return p.Name()
}

var _ gpio.PinOut = &Pin{}
