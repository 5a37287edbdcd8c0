package hal

import "fmt"

// FieldArray is a typed accessor over Count equal-width fields packed
// across contiguous storage words. Each field occupies StorageWidth bits
// of backing store (>= its logical Width, the excess is padding) starting
// InitialOffset bits into the first word; fields need not align to word
// boundaries. The NVIC enable/pending/active banks (240 one-bit fields in
// 8 words) and the priority banks (8-bit fields, 4 per word) are the
// canonical instances.
type FieldArray[T ~uint32] struct {
	words        []Reg
	count        uint32
	width        uint8
	storageWidth uint8
	initOffset   uint8
	access       Access
	mode         Mode
}

// ArraySpec describes a field array layout.
type ArraySpec struct {
	Width         uint // logical bits per field
	Count         uint // number of fields
	StorageWidth  uint // backing bits per field; 0 means Width
	InitialOffset uint // bit offset of field 0 in the first word
	Access        Access
	Mode          Mode
}

// NewFieldArray binds an accessor over words. The backing store must hold
// every field (Count*StorageWidth+InitialOffset <= len(words)*32) and no
// field may straddle a word boundary.
func NewFieldArray[T ~uint32](words []Reg, spec ArraySpec) FieldArray[T] {
	sw := spec.StorageWidth
	if sw == 0 {
		sw = spec.Width
	}
	if sw < spec.Width {
		panic(fmt.Sprintf("hal: field storage width %d below logical width %d", sw, spec.Width))
	}
	if spec.Count*sw+spec.InitialOffset > uint(len(words))*RegisterBits {
		panic(fmt.Sprintf("hal: %d fields of %d bits overflow %d words", spec.Count, sw, len(words)))
	}
	for i := uint(0); i < spec.Count; i++ {
		if off := (i*sw + spec.InitialOffset) % RegisterBits; off+spec.Width > RegisterBits {
			panic(fmt.Sprintf("hal: field %d straddles a word boundary at bit %d", i, off))
		}
	}
	return FieldArray[T]{
		words:        words,
		count:        uint32(spec.Count),
		width:        uint8(spec.Width),
		storageWidth: uint8(sw),
		initOffset:   uint8(spec.InitialOffset),
		access:       spec.Access,
		mode:         spec.Mode,
	}
}

// Count returns the number of fields in the array.
func (a FieldArray[T]) Count() uint32 { return a.count }

func (a FieldArray[T]) locate(i uint32) (word uint32, offset uint) {
	bit := uint(i)*uint(a.storageWidth) + uint(a.initOffset)
	return uint32(bit / RegisterBits), bit % RegisterBits
}

// Get returns field i, or zero when i is out of range.
func (a FieldArray[T]) Get(i uint32) T {
	if i >= a.count {
		return 0
	}
	word, offset := a.locate(i)
	mask := Mask[Raw](offset, uint(a.width))
	return T((a.words[word].load(a.mode) & mask) >> offset)
}

// At returns a bound accessor for field i, or an inert accessor when i is
// out of range.
func (a FieldArray[T]) At(i uint32) Field[T] {
	if i >= a.count {
		return Field[T]{}
	}
	word, offset := a.locate(i)
	return NewField[T](&a.words[word], offset, uint(a.width), a.access, a.mode)
}

// Set writes field i; out of range indices are ignored.
func (a FieldArray[T]) Set(i uint32, v T) {
	a.At(i).Set(v)
}
