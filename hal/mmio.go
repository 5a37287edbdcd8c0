package hal

import "unsafe"

// MapAt reinterprets a bus address as a register-map struct. This is the
// single point in the module where a raw numeric address becomes
// structured memory; the caller guarantees that addr denotes live, mapped
// peripheral memory for the whole lifetime of the returned pointer. No
// bounds or liveness checking is performed.
func MapAt[T any](addr Address) *T {
	return (*T)(unsafe.Pointer(uintptr(addr)))
}
