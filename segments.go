package optrexlcd

// Segment bits, most significant first. The low bit is not connected.
//
//	   a
//	  ---
//	b|   |g
//	  -c-
//	d|   |f
//	  ---
//	   e
const (
	SegC uint8 = 1 << (7 - iota)
	SegB
	SegD
	SegE
	SegF
	SegG
	SegA
)

// Indices into segmentTable past the hex digits.
const (
	segMinus      = 16
	segUnderscore = 17
	segClear      = 18
	segSecure     = 19
)

var segmentTable = [20]uint8{
	//CBDEFGA.
	0b01111110, // 0
	0b00001100, // 1
	0b10110110, // 2
	0b10011110, // 3
	0b11001100, // 4
	0b11011010, // 5
	0b11111010, // 6
	0b00001110, // 7
	0b11111110, // 8
	0b11011110, // 9
	0b11101110, // A
	0b11111000, // b
	0b01110010, // C
	0b10111100, // d
	0b11110010, // E
	0b11100010, // F
	0b10000000, // -
	0b00010000, // _
	0b00000010, // "Clear" word, control byte only
	0b00000100, // "Secure" word, control byte only
}

// Encode translates a rune into the segments that draw it. Hex digits are
// accepted in either case, space blanks the digit, and anything the display
// cannot draw becomes an underscore.
func Encode(r rune) uint8 {
	switch {
	case r >= '0' && r <= '9':
		return segmentTable[r-'0']
	case r >= 'A' && r <= 'F':
		return segmentTable[r-'A'+10]
	case r >= 'a' && r <= 'f':
		return segmentTable[r-'a'+10]
	}
	switch r {
	case ' ':
		return 0
	case '-':
		return segmentTable[segMinus]
	}
	return segmentTable[segUnderscore]
}

// Decode is the inverse of Encode. Hex letters decode to upper case. ok is
// false if the pattern is not one Encode produces.
func Decode(b uint8) (r rune, ok bool) {
	if b == 0 {
		return ' ', true
	}
	for i, s := range segmentTable[:segClear] {
		if s != b {
			continue
		}
		switch {
		case i < 10:
			return rune('0' + i), true
		case i < 16:
			return rune('A' + i - 10), true
		case i == segMinus:
			return '-', true
		default:
			return '_', true
		}
	}
	return 0, false
}
