package render

import (
	"sync"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/nsf/termbox-go"
)

// Termbox draws frames full screen. Only one may be open at a time.
type Termbox struct {
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{} // closed when poll returns
}

// OpenTermbox takes over the terminal. Close must be called to give it back.
func OpenTermbox() (*Termbox, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	t := newTermbox()
	go t.poll(termbox.PollEvent)
	return t, nil
}

func newTermbox() *Termbox {
	return &Termbox{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// poll closes quit when q, Esc or Ctrl-C is pressed, or when input fails. It
// keeps reading events until interrupted, so that Close always has a reader
// for its interrupt.
func (t *Termbox) poll(next func() termbox.Event) {
	defer close(t.done)
	for {
		ev := next()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				t.quitOnce.Do(func() { close(t.quit) })
			}
		case termbox.EventError:
			t.quitOnce.Do(func() { close(t.quit) })
		case termbox.EventInterrupt:
			return
		}
	}
}

// stop interrupts poll and waits for it to return.
func (t *Termbox) stop(interrupt func()) {
	interrupt()
	<-t.done
}

// Quit is closed when the user asks to quit.
func (t *Termbox) Quit() <-chan struct{} {
	return t.quit
}

// Draw redraws the screen with the frame, scaled up so that each segment is
// a few cells long.
func (t *Termbox) Draw(f optrexlcd.Frame) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	const w, h, gap = 6, 5, 3
	x0, y0 := 2, 1
	for i := len(f) - 1; i > 0; i-- {
		s := f[i]
		hbar := func(mask uint8, y int) {
			if s&mask == 0 {
				return
			}
			for x := 1; x < w-1; x++ {
				termbox.SetCell(x0+x, y0+y, '━', termbox.ColorGreen, termbox.ColorDefault)
			}
		}
		vbar := func(mask uint8, x, y int) {
			if s&mask == 0 {
				return
			}
			for dy := 1; dy < h/2+1; dy++ {
				termbox.SetCell(x0+x, y0+y+dy, '┃', termbox.ColorGreen, termbox.ColorDefault)
			}
		}
		hbar(optrexlcd.SegA, 0)
		hbar(optrexlcd.SegC, h/2+1)
		hbar(optrexlcd.SegE, h+1)
		vbar(optrexlcd.SegB, 0, 0)
		vbar(optrexlcd.SegG, w-1, 0)
		vbar(optrexlcd.SegD, 0, h/2+1)
		vbar(optrexlcd.SegF, w-1, h/2+1)
		x0 += w + gap
	}
	x := 2
	for _, r := range Words(f) {
		termbox.SetCell(x, y0+h+3, r, termbox.ColorYellow, termbox.ColorDefault)
		x++
	}
	return termbox.Flush()
}

// Close gives the terminal back.
func (t *Termbox) Close() {
	t.stop(termbox.Interrupt)
	termbox.Close()
}
