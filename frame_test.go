package optrexlcd

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDisplayOrder(t *testing.T) {
	d := &IM50240{}
	d.Display("12Ab")
	f := d.Frame()
	assert.Equal(t, f, Frame{0, Encode('b'), Encode('A'), Encode('2'), Encode('1')})
	assert.Equal(t, f.Text(), "12AB")
}

func TestDisplayShortAndLong(t *testing.T) {
	d := &IM50240{}
	d.Display("7")
	assert.Equal(t, d.Frame().Text(), "7   ")
	d.Display("123456")
	assert.Equal(t, d.Frame().Text(), "1234")
	d.Display("")
	assert.Equal(t, d.Frame(), Frame{})
}

func TestDisplayUint(t *testing.T) {
	d := &IM50240{}
	for v := uint(0); v <= 9999; v++ {
		d.DisplayUint(v)
		assert.Equal(t, d.Frame().Text(), fmt.Sprintf("%04d", v))
	}
}

func TestDisplayOverflow(t *testing.T) {
	want := &IM50240{}
	want.Display("----")

	for _, v := range []uint{10000, 10001, 65535, ^uint(0)} {
		d := &IM50240{}
		d.DisplayUint(v)
		assert.Equal(t, d.Frame(), want.Frame(), "DisplayUint(%d)", v)
	}
	for _, v := range []int{-1000, 10000, -1 << 31, 1<<31 - 1} {
		d := &IM50240{}
		d.DisplayInt(v)
		assert.Equal(t, d.Frame(), want.Frame(), "DisplayInt(%d)", v)
	}
}

func TestDisplayInt(t *testing.T) {
	d := &IM50240{}
	for v := -999; v <= 9999; v++ {
		want := fmt.Sprintf("%04d", v)
		if v < 0 {
			want = fmt.Sprintf("-%03d", -v)
		}
		d.DisplayInt(v)
		assert.Equal(t, d.Frame().Text(), want, "DisplayInt(%d)", v)
	}
}

func TestFlags(t *testing.T) {
	d := &IM50240{}
	d.Display("8888")
	d.SetSecure(true)
	f := d.Frame()
	assert.Assert(t, f.Flag(FlagSecure))
	assert.Assert(t, !f.Flag(FlagClear))
	assert.Equal(t, f[0], uint8(0x04))

	d.SetClear(true)
	assert.Equal(t, d.Frame()[0], uint8(0x06))
	d.SetFlag(FlagSecure, false)
	assert.Equal(t, d.Frame()[0], uint8(0x02))

	// Text writes leave the words alone.
	d.DisplayInt(-5)
	assert.Equal(t, d.Frame()[0], uint8(0x02))
	assert.Equal(t, d.Frame().Text(), "-005")

	d.SetClear(false)
	assert.Equal(t, d.Frame()[0], uint8(0))
	assert.Equal(t, FlagSecure.String(), "Secure")
	assert.Equal(t, FlagClear.String(), "Clear")
}

func TestClearResetsEverything(t *testing.T) {
	d := &IM50240{}
	d.Display("ABCD")
	d.SetSecure(true)
	d.SetClear(true)
	for i := 0; i < 117; i++ {
		assert.NilError(t, d.Tick())
	}
	assert.Assert(t, d.bits != FrameBits)

	d.Clear()
	assert.Equal(t, d.Frame(), Frame{})
	assert.Equal(t, d.buf, shiftBuffer{})
	assert.Equal(t, d.bits, uint8(FrameBits))
}

func TestFrameBits(t *testing.T) {
	f := Frame{0x02, 0x7E, 0x0C, 0xB6, 0x9E}
	assert.Equal(t, f.Bits(), uint64(0x027E0CB69E))
	assert.Equal(t, FrameFromBits(f.Bits()), f)
	assert.Equal(t, FrameFromBits(0xFF_027E0CB69E), f)
	assert.Equal(t, FrameBits, 8*len(Frame{}))

	// The bit counter is a uint8 and must hold a whole frame.
	var bits uint8 = FrameBits
	assert.Equal(t, int(bits), 8*len(Frame{}))
}

func TestFrameTextUnknown(t *testing.T) {
	f := Frame{0, 0xFF, 0, 0x80, 0x7E}
	assert.Equal(t, f.Text(), "0- ?")
}
