package render

import (
	"image"
	"io"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/fogleman/gg"
)

// Image dimensions, in pixels.
const (
	digitW  = 40
	digitH  = 72
	segT    = 7
	digitGp = 18
	margin  = 16

	ImageW = 2*margin + 4*digitW + 3*digitGp
	ImageH = 2*margin + digitH + 24
)

// Image draws the frame the way the glass looks: dark segments on a grey
// green background, with faint outlines of the unlit segments.
func Image(f optrexlcd.Frame) image.Image {
	return draw(f).Image()
}

// EncodePNG writes the frame as a PNG image.
func EncodePNG(w io.Writer, f optrexlcd.Frame) error {
	return draw(f).EncodePNG(w)
}

// SavePNG writes the frame to a PNG file.
func SavePNG(path string, f optrexlcd.Frame) error {
	return draw(f).SavePNG(path)
}

func draw(f optrexlcd.Frame) *gg.Context {
	dc := gg.NewContext(ImageW, ImageH)
	dc.SetRGB255(0xB8, 0xC4, 0xA8)
	dc.Clear()

	x := float64(margin)
	y := float64(margin)
	half := float64(digitH-segT) / 2
	for i := len(f) - 1; i > 0; i-- {
		s := f[i]
		segs := []struct {
			mask       uint8
			x, y, w, h float64
		}{
			{optrexlcd.SegA, x + segT, y, digitW - 2*segT, segT},
			{optrexlcd.SegC, x + segT, y + half, digitW - 2*segT, segT},
			{optrexlcd.SegE, x + segT, y + 2*half, digitW - 2*segT, segT},
			{optrexlcd.SegB, x, y + segT, segT, half - segT},
			{optrexlcd.SegG, x + digitW - segT, y + segT, segT, half - segT},
			{optrexlcd.SegD, x, y + half + segT, segT, half - segT},
			{optrexlcd.SegF, x + digitW - segT, y + half + segT, segT, half - segT},
		}
		for _, sg := range segs {
			dc.DrawRectangle(sg.x, sg.y, sg.w, sg.h)
			if s&sg.mask != 0 {
				dc.SetRGB255(0x18, 0x1C, 0x20)
				dc.Fill()
				continue
			}
			dc.SetRGBA255(0x18, 0x1C, 0x20, 0x18)
			dc.Fill()
		}
		x += digitW + digitGp
	}

	dc.SetRGB255(0x18, 0x1C, 0x20)
	wy := float64(margin + digitH + 18)
	if f.Flag(optrexlcd.FlagSecure) {
		dc.DrawString("SECURE", margin, wy)
	}
	if f.Flag(optrexlcd.FlagClear) {
		dc.DrawString("CLEAR", ImageW/2, wy)
	}
	return dc
}
