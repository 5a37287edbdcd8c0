package hal

// Access selects how a field reaches its bits within the storage word.
type Access uint8

const (
	// Packed fields own a dedicated bit range; Set replaces the field's
	// previous bits, the sub-word assignment semantics of a bitfield.
	Packed Access = iota
	// MaskShift fields share the word with other fields; Set ORs the
	// shifted value in without clearing the field's previous bits, so it
	// is only correct when those bits are known to be zero (typically
	// right after a whole-register reset). Required for non-integer
	// value types sharing a word.
	MaskShift
	// StoreMask fields are write-1-to-set or write-1-to-clear command
	// bits. Set stores just the shifted value, no load: a read-modify-
	// write on such a word would re-issue every currently set flag as a
	// command.
	StoreMask
)

// Mode selects the volatility of a field's word accesses.
type Mode uint8

const (
	// Volatile issues one hardware load per Get and one store per Set.
	Volatile Mode = iota
	// Staged treats the word as ordinary memory.
	Staged
)

// Field is a typed accessor over a sub-range of bits in one storage word.
// A field is declared once per register map and lives as long as the
// memory it overlays. The zero Field is inert: Get returns zero and Set
// does nothing.
type Field[T ~uint32] struct {
	reg    *Reg
	mask   Raw
	offset uint8
	access Access
	mode   Mode
}

// NewField binds an accessor for width bits at offset within reg.
func NewField[T ~uint32](reg *Reg, offset, width uint, access Access, mode Mode) Field[T] {
	return Field[T]{
		reg:    reg,
		mask:   Mask[Raw](offset, width),
		offset: uint8(offset),
		access: access,
		mode:   mode,
	}
}

// Bit binds a 1-bit accessor at offset within reg.
func Bit[T ~uint32](reg *Reg, offset uint, access Access, mode Mode) Field[T] {
	return NewField[T](reg, offset, 1, access, mode)
}

// Get extracts the field's value from the word.
func (f Field[T]) Get() T {
	if f.reg == nil {
		return 0
	}
	return T((f.reg.load(f.mode) & f.mask) >> f.offset)
}

// Set writes only the bits within the field's mask. Replacement versus
// OR-in semantics follow the field's Access strategy.
func (f Field[T]) Set(v T) {
	if f.reg == nil {
		return
	}
	if f.access == StoreMask {
		f.reg.store(f.mode, (Raw(v)<<f.offset)&f.mask)
		return
	}
	w := f.reg.load(f.mode)
	if f.access == Packed {
		w &^= f.mask
	}
	w |= (Raw(v) << f.offset) & f.mask
	f.reg.store(f.mode, w)
}

// SetBit sets a 1-bit field from a bool.
func (f Field[T]) SetBit(v bool) {
	f.Set(T(BitOf(v)))
}

// IsSet reports whether the field reads non-zero.
func (f Field[T]) IsSet() bool {
	return f.Get() != 0
}

// RO restricts the field to its read path.
func (f Field[T]) RO() ROField[T] { return ROField[T]{f: f} }

// WO restricts the field to its write path.
func (f Field[T]) WO() WOField[T] { return WOField[T]{f: f} }

// ROField is a read-only view of a register field.
type ROField[T ~uint32] struct {
	f Field[T]
}

func (r ROField[T]) Get() T      { return r.f.Get() }
func (r ROField[T]) IsSet() bool { return r.f.IsSet() }

// WOField is a write-only view of a register field.
type WOField[T ~uint32] struct {
	f Field[T]
}

func (w WOField[T]) Set(v T)       { w.f.Set(v) }
func (w WOField[T]) SetBit(v bool) { w.f.SetBit(v) }
