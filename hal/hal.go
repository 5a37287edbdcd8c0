// Package hal is the register access layer shared by all peripheral
// drivers. Register maps are plain structs of Reg storage words whose
// layout mirrors the vendor address map bit for bit; named bit ranges
// inside those words are reached through Field and FieldArray accessors.
package hal

// Raw is the width of a hardware storage word.
type Raw = uint32

// RegisterBits is the bit width of one storage word.
const RegisterBits = 32

// Address is a bus address of a memory mapped peripheral.
type Address uint32

// Set is the value type of write-1-to-set register bits.
type Set Raw

const (
	SetNoEffect Set = 0
	SetBit      Set = 1
)

// Clear is the value type of write-1-to-clear register bits.
type Clear Raw

const (
	ClearNoEffect Clear = 0
	ClearBit      Clear = 1
)

// Enabled reports the enable state of a register bit.
type Enabled Raw

const (
	Disabled  Enabled = 0
	IsEnabled Enabled = 1
)

// Active reports the active state of a register bit.
type Active Raw

const (
	Inactive Active = 0
	IsActive Active = 1
)

// Pended reports the pending state of a register bit.
type Pended Raw

const (
	NotPended Pended = 0
	IsPended  Pended = 1
)

// BitOf converts a bool to the raw value of a 1-bit field.
func BitOf(v bool) Raw {
	if v {
		return 1
	}
	return 0
}
