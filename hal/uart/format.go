package uart

import "strconv"

// NumberBase selects the radix for formatted output. Values are the
// radix itself.
type NumberBase uint8

const (
	Bin NumberBase = 2
	Oct NumberBase = 8
	Dec NumberBase = 10
	Hex NumberBase = 16
)

// formatInt renders v in the given base, left padded with fill up to a
// minimum width. Negative values are rendered signed in base 10 and as
// their unsigned two's complement pattern in the other bases.
func formatInt(v int64, base NumberBase, width int, fill byte) string {
	b := int(base)
	switch b {
	case 2, 8, 10, 16:
	default:
		b = 10
	}

	var s string
	if b == 10 {
		s = strconv.FormatInt(v, 10)
	} else {
		s = strconv.FormatUint(uint64(v), b)
	}

	if pad := width - len(s); pad > 0 {
		buf := make([]byte, pad, width)
		for i := range buf {
			buf[i] = fill
		}
		s = string(append(buf, s...))
	}
	return s
}
