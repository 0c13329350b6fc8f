// Package render draws IM50240 frames for people: as text, on an ANSI
// terminal, full screen with termbox, or as an image.
package render

import (
	"strings"

	"github.com/DrJosh9000/optrexlcd"
)

// Digits returns three lines drawing the digits of f, left to right, in the
// usual underscore and bar style:
//
//	 _       _   _
//	| |   |  _|  _|
//	|_|   | |_   _|
func Digits(f optrexlcd.Frame) [3]string {
	var rows [3]strings.Builder
	for i := len(f) - 1; i > 0; i-- {
		s := f[i]
		rows[0].WriteString(" " + seg(s, optrexlcd.SegA, "_") + " ")
		rows[1].WriteString(seg(s, optrexlcd.SegB, "|") + seg(s, optrexlcd.SegC, "_") + seg(s, optrexlcd.SegG, "|"))
		rows[2].WriteString(seg(s, optrexlcd.SegD, "|") + seg(s, optrexlcd.SegE, "_") + seg(s, optrexlcd.SegF, "|"))
		if i > 1 {
			for r := range rows {
				rows[r].WriteByte(' ')
			}
		}
	}
	return [3]string{rows[0].String(), rows[1].String(), rows[2].String()}
}

// Words returns the Secure and Clear words, blanked out if they are off.
func Words(f optrexlcd.Frame) string {
	w := func(flag optrexlcd.Flag, s string) string {
		if f.Flag(flag) {
			return s
		}
		return strings.Repeat(" ", len(s))
	}
	return w(optrexlcd.FlagSecure, "SECURE") + " " + w(optrexlcd.FlagClear, "CLEAR")
}

// Text returns the whole display as four lines.
func Text(f optrexlcd.Frame) string {
	d := Digits(f)
	return d[0] + "\n" + d[1] + "\n" + d[2] + "\n" + Words(f) + "\n"
}

func seg(b, mask uint8, c string) string {
	if b&mask == 0 {
		return " "
	}
	return c
}
