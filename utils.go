package rcpool

import "unsafe"

// Estimates the page length (number of slots) that fits in the given memory
// size in bytes. Slot bookkeeping is included, so the result is always a bit
// lower than size / unsafe.Sizeof(T).
func PageLenFromSize[T any](size uintptr) int {
	return int(size / unsafe.Sizeof(slot[T]{}))
}
