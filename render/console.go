package render

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	litColor   = color.NRGBA{0x20, 0xE0, 0x40, 0xFF}
	unlitColor = color.NRGBA{0x30, 0x30, 0x30, 0xFF}
)

// Console prints frames to a terminal, redrawing in place. Below the digits it
// shows the 40 transmitted bits as a strip of coloured blocks. If the output
// is not a terminal, escape codes are stripped and each frame is printed
// after the previous one.
type Console struct {
	w       io.Writer
	tty     bool
	palette *ansi256.Palette
	drawn   bool
	buf     bytes.Buffer
}

// NewConsole returns a Console writing to f.
func NewConsole(f *os.File) *Console {
	c := &Console{palette: ansi256.Default}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		c.w = colorable.NewColorable(f)
		c.tty = true
	} else {
		c.w = colorable.NewNonColorable(f)
	}
	return c
}

// Draw prints the frame.
func (c *Console) Draw(f optrexlcd.Frame) error {
	c.buf.Reset()
	if c.drawn && c.tty {
		// Back to the top of the previous drawing.
		c.buf.WriteString("\033[5A\r")
	}
	c.buf.WriteString("\033[0m")
	c.buf.WriteString(Text(f))
	bits := f.Bits()
	for i := optrexlcd.FrameBits - 1; i >= 0; i-- {
		col := unlitColor
		if bits&(1<<i) != 0 {
			col = litColor
		}
		c.buf.WriteString(c.palette.Block(col))
	}
	c.buf.WriteString("\033[0m\n")
	c.drawn = true
	_, err := c.buf.WriteTo(c.w)
	return err
}

// Halt resets the terminal colours.
func (c *Console) Halt() error {
	_, err := io.WriteString(c.w, "\033[0m")
	return err
}
