package hal

import "sync/atomic"

// Reg is one 32-bit storage word of a register map. Volatile access goes
// through Load and Store, which issue exactly one 32-bit load or store
// that the compiler cannot elide, cache, or reorder across the call.
// Staged access (load/store) treats the word as ordinary memory so that
// several field writes can be combined before a single volatile commit.
type Reg uint32

// Load performs one volatile read of the word.
func (r *Reg) Load() Raw {
	return atomic.LoadUint32((*uint32)(r))
}

// Store performs one volatile write of the word.
func (r *Reg) Store(v Raw) {
	atomic.StoreUint32((*uint32)(r), v)
}

func (r *Reg) load(m Mode) Raw {
	if m == Volatile {
		return r.Load()
	}
	return Raw(*r)
}

func (r *Reg) store(m Mode, v Raw) {
	if m == Volatile {
		r.Store(v)
		return
	}
	*r = Reg(v)
}
