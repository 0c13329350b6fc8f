package optrexlcd

import (
	"strconv"
	"strings"
)

// FrameBits is the number of bits shifted into the display per refresh, one
// per bit of a Frame.
const FrameBits = 40

// overflow is shown when a number does not fit in four digits.
const overflow = "----"

// Frame is the complete content of the display, in transmission order. Byte 0
// holds the Secure and Clear word flags, bytes 1 to 4 hold the digits from
// right to left.
type Frame [5]uint8

// Flag selects one of the two words printed on the display.
type Flag uint8

// Words the display can show besides the digits.
const (
	FlagClear  = Flag(segClear)
	FlagSecure = Flag(segSecure)
)

func (f Flag) mask() uint8 {
	return segmentTable[f]
}

func (f Flag) String() string {
	switch f {
	case FlagClear:
		return "Clear"
	case FlagSecure:
		return "Secure"
	}
	return "Flag(" + strconv.Itoa(int(f)) + ")"
}

// Text decodes the four digits, left to right. Patterns that are not
// produced by Encode decode as '?'.
func (f Frame) Text() string {
	var sb strings.Builder
	for i := len(f) - 1; i > 0; i-- {
		r, ok := Decode(f[i])
		if !ok {
			r = '?'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Flag reports whether the word is lit.
func (f Frame) Flag(w Flag) bool {
	return f[0]&w.mask() != 0
}

// Bits returns the frame as a 40-bit number. The most significant of the 40
// bits is sent first.
func (f Frame) Bits() uint64 {
	var x uint64
	for _, b := range f {
		x = x<<8 | uint64(b)
	}
	return x
}

// FrameFromBits is the inverse of Frame.Bits. Bits above the 40th are ignored.
func FrameFromBits(x uint64) Frame {
	var f Frame
	for i := len(f) - 1; i >= 0; i-- {
		f[i] = uint8(x)
		x >>= 8
	}
	return f
}

func (f *Frame) setText(s string) {
	rs := []rune(s)
	for x := 0; x < 4; x++ {
		r := ' '
		if x < len(rs) {
			r = rs[x]
		}
		f[4-x] = Encode(r)
	}
}

func (f *Frame) setFlag(w Flag, on bool) {
	if on {
		f[0] |= w.mask()
	} else {
		f[0] &^= w.mask()
	}
}

// uintText renders v as four zero-padded digits.
func uintText(v uint) string {
	if v > 9999 {
		return overflow
	}
	var buf [4]byte
	for x := 3; x >= 0; x-- {
		buf[x] = '0' + byte(v%10)
		v /= 10
	}
	return string(buf[:])
}

// intText renders v as four characters, a leading minus taking the place of
// the most significant digit.
func intText(v int) string {
	if v < -999 || v > 9999 {
		return overflow
	}
	var buf [4]byte
	c := 0
	if v < 0 {
		buf[0] = '-'
		c = 1
		v = -v
	}
	for x := 3; x >= c; x-- {
		buf[x] = '0' + byte(v%10)
		v /= 10
	}
	return string(buf[:])
}

// Clear blanks the whole display, including the Secure and Clear words. The
// refresh in progress is abandoned, so the blank display is latched without
// waiting for the current frame to finish.
func (d *IM50240) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setup()
	d.frame = Frame{}
	d.buf = shiftBuffer{}
	d.bits = FrameBits
}

// Display writes four characters to the digits. Hex digits, '-', '_' and ' '
// are drawn; other runes appear as '_'. Runes past the fourth are ignored and
// a short string is padded with blanks on the right.
func (d *IM50240) Display(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.setText(s)
}

// DisplayUint writes a zero-padded number between 0 and 9999. Larger numbers
// display as "----".
func (d *IM50240) DisplayUint(v uint) {
	d.Display(uintText(v))
}

// DisplayInt writes a number between -999 and 9999. Negative numbers use the
// leftmost digit for the minus sign. Numbers out of range display as "----".
func (d *IM50240) DisplayInt(v int) {
	d.Display(intText(v))
}

// SetFlag turns one of the words on or off. The digits are unaffected.
func (d *IM50240) SetFlag(w Flag, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.setFlag(w, on)
}

// SetSecure turns the word "Secure" on or off.
func (d *IM50240) SetSecure(on bool) { d.SetFlag(FlagSecure, on) }

// SetClear turns the word "Clear" on or off.
func (d *IM50240) SetClear(on bool) { d.SetFlag(FlagClear, on) }

// Frame returns a copy of the content that will be sent on the next refresh.
func (d *IM50240) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}
