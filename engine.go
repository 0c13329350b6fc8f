package optrexlcd

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// shiftBuffer is the copy of a Frame being clocked out.
type shiftBuffer Frame

// shiftOut returns the most significant bit and shifts the buffer left by one,
// carrying the top bit of each byte into the byte before it.
func (s *shiftBuffer) shiftOut() gpio.Level {
	bit := s[0]&0x80 != 0
	for x := range s {
		var carry uint8
		if x+1 < len(s) {
			carry = s[x+1] >> 7
		}
		s[x] = s[x]<<1 | carry
	}
	return gpio.Level(bit)
}

// lineWriter drives lines, remembering every failure. Nil lines are skipped.
type lineWriter struct {
	errs []error
}

func (w *lineWriter) out(p gpio.PinOut, l gpio.Level) {
	if p == nil {
		return
	}
	if err := p.Out(l); err != nil {
		w.errs = append(w.errs, err)
	}
}

func (w *lineWriter) err() error {
	return errors.Join(w.errs...)
}

// Tick advances the protocol by one half period of the shift clock. Run calls
// it every Interval; it is exported for callers with their own scheduling.
// Tick must not be called concurrently with itself.
//
// Every call completes the state change even if a line fails to change; the
// returned error joins all line failures.
func (d *IM50240) Tick() error {
	d.mu.Lock()
	latched, err := d.step()
	cb := d.OnLatch
	d.mu.Unlock()

	if latched && cb != nil {
		cb()
	}
	return err
}

// step performs one tick with d.mu held. It reports whether the latch was
// released during this tick.
func (d *IM50240) step() (latched bool, err error) {
	d.setup()
	var w lineWriter

	d.shift = !d.shift
	w.out(d.Shift, gpio.Level(d.shift))

	// M runs at half the shift clock rate.
	if d.shift {
		d.m = !d.m
		w.out(d.M, gpio.Level(d.m))
	}

	switch {
	case d.latch:
		d.latch = false
		w.out(d.Latch, gpio.Low)
		d.latches++
		close(d.latched)
		d.latched = make(chan struct{})
		latched = true

	case d.bits > 0:
		if d.shift {
			w.out(d.Din, d.buf.shiftOut())
			break
		}
		d.bits--
		if d.bits == 0 {
			d.latch = true
			w.out(d.Latch, gpio.High)
		}

	default:
		// Between frames: pick up whatever was written since the last one.
		d.buf = shiftBuffer(d.frame)
		d.bits = FrameBits
	}
	return latched, w.err()
}
