package optrexlcd_test

import (
	"math/rand"
	"testing"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/DrJosh9000/optrexlcd/sim"
	"gotest.tools/v3/assert"
)

func wired(t *testing.T) (*optrexlcd.IM50240, *sim.Panel) {
	t.Helper()
	p := &sim.Panel{}
	d := &optrexlcd.IM50240{}
	p.Wire(d)
	assert.NilError(t, d.Init())
	return d, p
}

func TestPanelShowsFrame(t *testing.T) {
	d, p := wired(t)
	d.Display("C0dE")
	d.SetClear(true)
	for p.Commits() < 2 {
		assert.NilError(t, d.Tick())
	}
	assert.Equal(t, p.Frame(), d.Frame())
	assert.Equal(t, p.Frame().Text(), "C0DE")
	assert.Equal(t, p.ShortCommits(), 0)
}

func TestPanelClocks(t *testing.T) {
	d, p := wired(t)
	const ticks = 4000
	for i := 0; i < ticks; i++ {
		assert.NilError(t, d.Tick())
	}
	// M changes level every other tick.
	assert.Equal(t, p.MEdges(), ticks/2)
	assert.Equal(t, uint64(p.Commits()), d.Latches())
	assert.Equal(t, p.ShortCommits(), 0)
}

// Frames written at arbitrary times reach the panel whole.
func TestPanelNeverTears(t *testing.T) {
	d, p := wired(t)
	written := map[optrexlcd.Frame]bool{d.Frame(): true}
	var shown []optrexlcd.Frame
	p.OnCommit = func(f optrexlcd.Frame) {
		shown = append(shown, f)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50000; i++ {
		if rng.Intn(60) == 0 {
			switch rng.Intn(4) {
			case 0:
				d.DisplayUint(uint(rng.Intn(12000)))
			case 1:
				d.DisplayInt(rng.Intn(12000) - 1500)
			case 2:
				d.SetFlag(optrexlcd.FlagSecure, rng.Intn(2) == 0)
			case 3:
				d.SetFlag(optrexlcd.FlagClear, rng.Intn(2) == 0)
			}
			written[d.Frame()] = true
		}
		assert.NilError(t, d.Tick())
	}
	assert.Assert(t, len(shown) > 500)
	for _, f := range shown {
		assert.Assert(t, written[f], "torn frame % x", f[:])
	}
}

// A write made between two reloads is what the next frame shows.
func TestPanelNextFrame(t *testing.T) {
	d, p := wired(t)
	for p.Commits() < 1 {
		assert.NilError(t, d.Tick())
	}
	// Next tick releases the latch, the one after reloads from the frame.
	assert.NilError(t, d.Tick())
	d.Display("0042")
	assert.NilError(t, d.Tick())
	for p.Commits() < 2 {
		assert.NilError(t, d.Tick())
	}
	assert.Equal(t, p.Frame().Text(), "0042")
}

func TestPanelClear(t *testing.T) {
	d, p := wired(t)
	d.Display("8888")
	d.SetSecure(true)
	for p.Commits() < 3 {
		assert.NilError(t, d.Tick())
	}
	assert.Equal(t, p.Frame().Text(), "8888")
	d.Clear()
	for p.Commits() < 4 {
		assert.NilError(t, d.Tick())
	}
	assert.Equal(t, p.Frame(), optrexlcd.Frame{})
}
