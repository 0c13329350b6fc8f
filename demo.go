package optrexlcd

import (
	"context"
	"time"
)

// CycleDigits animates a simple test pattern consisting of hex digits, with
// the two words lit alternately.
func (d *IM50240) CycleDigits(ctx context.Context) {
	hex := "0123456789ABCDEF012"
	off := 0
	t := d.clock().NewTicker(500 * time.Millisecond)
	defer t.Stop()
	for {
		d.Display(hex[off : off+4])
		d.SetSecure(off%2 == 0)
		d.SetClear(off%2 == 1)
		select {
		case <-t.Chan():
		case <-ctx.Done():
			return
		}
		off++
		off %= 16
	}
}

// Count displays an incrementing counter, one value per latched frame,
// starting at start. After 9999 it starts again at 0.
func (d *IM50240) Count(ctx context.Context, start uint) error {
	n := start % 10000
	for {
		d.DisplayUint(n)
		if err := d.WaitLatchedContext(ctx); err != nil {
			return err
		}
		n = (n + 1) % 10000
	}
}
