package rcpool

import "errors"

var (
	// ErrPoolFull is returned by TryInsert when no page has a free slot.
	ErrPoolFull = errors.New("rcpool: pool is full")

	// ErrStale is returned when a weak reference outlived the value it was
	// issued for.
	ErrStale = errors.New("rcpool: stale weak reference")

	// ErrBorrowed is returned when the value is exclusively borrowed.
	ErrBorrowed = errors.New("rcpool: already borrowed as mutable")

	// ErrInUse is returned when a value can't be taken out of the pool because
	// strong references to it still exist.
	ErrInUse = errors.New("rcpool: value has strong references")

	// ErrForeignRef is returned when a reference is passed to a pool that
	// didn't issue it.
	ErrForeignRef = errors.New("rcpool: reference belongs to another pool")
)
