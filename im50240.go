// Package optrexlcd drives an Optrex IM50240 LCD module (4 seven-segment
// digits plus the words "Secure" and "Clear") via GPIO pins (using
// periph.io).
//
// The module has no clock of its own. It needs a square wave M of 30 - 200Hz
// with a 50% duty cycle, a shift clock at twice the frequency of M, a data
// line, and a latch strobe after every 40 bits. All four are produced in
// software, one step per tick.
package optrexlcd // import "github.com/DrJosh9000/optrexlcd"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
)

// DefaultInterval is the tick interval used if Interval is not set. It gives
// an M clock of about 83Hz.
const DefaultInterval = 3 * time.Millisecond

// ErrMissingLine is returned by Init when a required line is nil.
var ErrMissingLine = errors.New("optrexlcd: missing line")

// IM50240 implements a driver for an Optrex IM50240 module. The PCB pinout is:
//
//	1  Din    data in
//	2  Latch  latch clock
//	3  Shift  shift clock
//	4  M      50% duty cycle square wave
//	6  +5V
//	7  GND
//	8  SW1 CLEAR push button foil (low when shorted)
//	9  SW2 SECURE push button foil (low when shorted)
//	10 chassis GND
//
// The exported fields must be set before Init and not changed afterwards.
// The zero value shows a blank display.
type IM50240 struct {
	M, Shift, Latch, Din gpio.PinOut // required

	Interval time.Duration   // optional, uses DefaultInterval if <= 0
	Clock    clockwork.Clock // optional, uses the real clock if nil

	// OnLatch is optional. If set, it is called after each latch, from the
	// goroutine calling Tick. It must return quickly and must not call
	// WaitLatched.
	OnLatch func()

	mu      sync.Mutex
	ready   bool
	frame   Frame
	buf     shiftBuffer
	bits    uint8
	m       bool
	shift   bool
	latch   bool
	latches uint64
	latched chan struct{} // closed when the latch is next released
}

// setup prepares the zero value for its first tick. d.mu must be held.
func (d *IM50240) setup() {
	if d.ready {
		return
	}
	d.ready = true
	d.bits = FrameBits
	d.latched = make(chan struct{})
}

// SetInterval changes the tick interval. Non-positive values are ignored. It
// has no effect on a Run already in progress.
func (d *IM50240) SetInterval(i time.Duration) {
	if i > 0 {
		d.Interval = i
	}
}

func (d *IM50240) interval() time.Duration {
	if d.Interval <= 0 {
		return DefaultInterval
	}
	return d.Interval
}

func (d *IM50240) clock() clockwork.Clock {
	if d.Clock == nil {
		return clockwork.NewRealClock()
	}
	return d.Clock
}

// Init checks the lines and drives them all low.
func (d *IM50240) Init() error {
	lines := []struct {
		name string
		p    gpio.PinOut
	}{
		{"M", d.M},
		{"Shift", d.Shift},
		{"Latch", d.Latch},
		{"Din", d.Din},
	}
	for _, l := range lines {
		if l.p == nil {
			return fmt.Errorf("%w: %s", ErrMissingLine, l.name)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.setup()
	var w lineWriter
	for _, l := range lines {
		w.out(l.p, gpio.Low)
	}
	if err := w.err(); err != nil {
		return fmt.Errorf("optrexlcd: init: %w", err)
	}
	return nil
}

// Run calls Tick every Interval until the context is done or a tick fails.
// The display must be kept refreshed while it is powered: a stalled M clock
// leaves a DC voltage across the liquid crystal.
func (d *IM50240) Run(ctx context.Context) error {
	t := d.clock().NewTicker(d.interval())
	defer t.Stop()
	for {
		select {
		case <-t.Chan():
			if err := d.Tick(); err != nil {
				return fmt.Errorf("optrexlcd: tick: %w", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WaitLatched blocks until the display next latches a frame. If the latch is
// asserted when it is called, it returns when that latch is released.
//
// It must not be called from OnLatch or from the goroutine running Tick.
func (d *IM50240) WaitLatched() {
	<-d.latchedChan()
}

// WaitLatchedContext is like WaitLatched, but gives up when the context is
// done.
func (d *IM50240) WaitLatchedContext(ctx context.Context) error {
	select {
	case <-d.latchedChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *IM50240) latchedChan() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setup()
	return d.latched
}

// Latches returns the number of frames latched so far.
func (d *IM50240) Latches() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latches
}

func (d *IM50240) String() string {
	return "IM50240"
}
