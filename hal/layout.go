package hal

import (
	"fmt"
	"sort"
	"sync"
)

// LayoutEntry names one documented register (or register bank) of a
// peripheral: its byte offset within the compiled register-map struct and
// the address the vendor datasheet documents for it.
type LayoutEntry struct {
	Name       string
	Offset     uintptr // unsafe.Offsetof of the struct field
	Documented Address // vendor documented absolute address
	Bits       uint    // total bit width of the entry (0: one word)
}

// Layout describes one peripheral's register map for validation.
type Layout struct {
	Peripheral string
	Base       Address // map base address (first byte of the struct)
	Size       uintptr // unsafe.Sizeof of the struct
	WantSize   uintptr // documented span of the peripheral
	Entries    []LayoutEntry
}

// Check compares every documented entry's struct offset against
// documented-minus-base, and the struct size against the documented span.
// A mismatch means the hand-transcribed map does not reproduce the vendor
// layout and would corrupt hardware state silently.
func (l Layout) Check() error {
	if l.Size != l.WantSize {
		return fmt.Errorf("%s: register map is %#x bytes, datasheet documents %#x",
			l.Peripheral, l.Size, l.WantSize)
	}
	for _, e := range l.Entries {
		want := uintptr(e.Documented - l.Base)
		if e.Offset != want {
			return fmt.Errorf("%s.%s: struct offset %#x, documented %#x (address %#x, base %#x)",
				l.Peripheral, e.Name, e.Offset, want, e.Documented, l.Base)
		}
	}
	return nil
}

var layouts struct {
	sync.Mutex
	m map[string]Layout
}

// MustRegisterLayout validates a peripheral layout and records it for
// tooling. It is called from driver package init functions, so a
// transcription error fails at construction time, before any register is
// ever touched.
func MustRegisterLayout(l Layout) {
	if err := l.Check(); err != nil {
		panic("hal: " + err.Error())
	}
	layouts.Lock()
	defer layouts.Unlock()
	if layouts.m == nil {
		layouts.m = make(map[string]Layout)
	}
	if _, dup := layouts.m[l.Peripheral]; dup {
		panic("hal: duplicate register layout " + l.Peripheral)
	}
	layouts.m[l.Peripheral] = l
}

// Layouts returns all registered peripheral layouts, ordered by name.
func Layouts() []Layout {
	layouts.Lock()
	defer layouts.Unlock()
	out := make([]Layout, 0, len(layouts.m))
	for _, l := range layouts.m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Peripheral < out[j].Peripheral })
	return out
}
