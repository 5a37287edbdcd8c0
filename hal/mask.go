package hal

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BitSequence returns a value with the width lowest bits set.
func BitSequence[T constraints.Unsigned](width uint) T {
	bits := uint(unsafe.Sizeof(T(0))) * 8
	if width > bits {
		panic(fmt.Sprintf("hal: bit sequence of width %d exceeds %d-bit word", width, bits))
	}
	if width == bits {
		return ^T(0)
	}
	return T(1)<<width - 1
}

// Mask returns the bit mask ((1<<width)-1)<<offset. The mask must fit the
// word: offset+width > word width is a transcription error in a register
// description and panics.
func Mask[T constraints.Unsigned](offset, width uint) T {
	bits := uint(unsafe.Sizeof(T(0))) * 8
	if offset+width > bits {
		panic(fmt.Sprintf("hal: mask %d+%d exceeds %d-bit word", offset, width, bits))
	}
	return BitSequence[T](width) << offset
}
