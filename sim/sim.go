// Package sim models the controller inside an IM50240 module, so the
// optrexlcd driver can be run and checked without the hardware.
//
// The model shifts Din in on each falling edge of the shift clock and copies
// the last 40 bits shifted in to the segments on each rising edge of the
// latch.
package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/DrJosh9000/optrexlcd"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned by Line.PWM.
var ErrNotImplemented = errors.New("sim: not implemented")

// Line names, also used as pin numbers.
const (
	LineM = iota
	LineShift
	LineLatch
	LineDin
)

var lineNames = [...]string{"M", "Shift", "Latch", "Din"}

// Panel is a simulated display. The zero value is blank and ready to use.
type Panel struct {
	// OnCommit is optional. If set, it is called with each latched frame,
	// with the Panel locked.
	OnCommit func(optrexlcd.Frame)

	mu      sync.Mutex
	levels  [4]gpio.Level
	reg     uint64 // shift register, last bit shifted in at the bottom
	shifted int    // bits shifted since the last commit
	shown   optrexlcd.Frame
	commits int
	mEdges  int
	short   int // commits with fewer than 40 bits shifted
}

// Lines returns the four inputs of the panel, in the order M, Shift, Latch,
// Din.
func (p *Panel) Lines() (m, shift, latch, din *Line) {
	return p.Line(LineM), p.Line(LineShift), p.Line(LineLatch), p.Line(LineDin)
}

// Line returns one input of the panel.
func (p *Panel) Line(n int) *Line {
	return &Line{panel: p, number: n}
}

// Wire connects the panel to a driver.
func (p *Panel) Wire(d *optrexlcd.IM50240) {
	d.M, d.Shift, d.Latch, d.Din = p.Lines()
}

func (p *Panel) set(n int, l gpio.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.levels[n]
	p.levels[n] = l
	if prev == l {
		return
	}
	switch n {
	case LineM:
		p.mEdges++
	case LineShift:
		if l == gpio.Low {
			p.reg = p.reg<<1 | b2u(p.levels[LineDin])
			p.shifted++
		}
	case LineLatch:
		if l == gpio.High {
			p.commit()
		}
	}
}

func (p *Panel) commit() {
	if p.shifted < optrexlcd.FrameBits {
		p.short++
	}
	p.shifted = 0
	p.shown = optrexlcd.FrameFromBits(p.reg)
	p.commits++
	if p.OnCommit != nil {
		p.OnCommit(p.shown)
	}
}

// Frame returns what the panel is showing.
func (p *Panel) Frame() optrexlcd.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

// Commits returns the number of latch strobes seen.
func (p *Panel) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commits
}

// ShortCommits returns the number of latch strobes that arrived before 40
// bits had been shifted in since the previous one.
func (p *Panel) ShortCommits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.short
}

// MEdges returns the number of times M has changed level.
func (p *Panel) MEdges() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mEdges
}

// Level returns the current level of one input.
func (p *Panel) Level(n int) gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[n]
}

func (p *Panel) String() string {
	return "IM50240 simulator"
}

func b2u(l gpio.Level) uint64 {
	if l {
		return 1
	}
	return 0
}

// Line is one input of a Panel.
type Line struct {
	panel  *Panel
	number int
}

// Halt implements conn.Resource.
func (l *Line) Halt() error {
	return nil
}

// Name returns the name of the input, e.g. "Shift".
func (l *Line) Name() string {
	return lineNames[l.number]
}

// Number returns the input number.
func (l *Line) Number() int {
	return l.number
}

// Deprecated: returns "Out"
func (l *Line) Function() string {
	return "Out"
}

// Out sets the level of the input.
func (l *Line) Out(level gpio.Level) error {
	l.panel.set(l.number, level)
	return nil
}

// Not implemented.
func (l *Line) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (l *Line) String() string {
	return fmt.Sprintf("%s.%s", l.panel, l.Name())
}

var _ gpio.PinOut = &Line{}
