package optrexlcd

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Limits on the frequency of M given in the data sheet.
const (
	MinM = 30 * physic.Hertz
	MaxM = 200 * physic.Hertz
)

// ShiftFrequency returns the shift clock frequency for a tick interval. The
// shift clock changes level on every tick, so it runs at twice M.
func ShiftFrequency(interval time.Duration) physic.Frequency {
	return 2 * MFrequency(interval)
}

// MFrequency returns the frequency of M for a tick interval.
func MFrequency(interval time.Duration) physic.Frequency {
	return physic.PeriodToFrequency(4 * interval)
}

// RefreshFrequency returns how often a complete frame is latched. Each frame
// takes 2 ticks per bit, plus one tick to release the latch and one to reload.
func RefreshFrequency(interval time.Duration) physic.Frequency {
	return physic.PeriodToFrequency(time.Duration(2*FrameBits+2) * interval)
}

// CheckTiming returns an error if the interval puts M outside the range the
// display accepts.
func CheckTiming(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("optrexlcd: interval %v is not positive", interval)
	}
	if f := MFrequency(interval); f < MinM || f > MaxM {
		return fmt.Errorf("optrexlcd: interval %v gives M at %s, want %s to %s", interval, f, MinM, MaxM)
	}
	return nil
}
