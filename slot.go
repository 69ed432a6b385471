package rcpool

import "math"

const (
	// exclusive is the reference count of a slot whose value is borrowed
	// through a RefMut. No other strong handle can be created while it's set.
	exclusive = math.MaxUint32

	// noSlot terminates a page free list.
	noSlot = math.MaxUint32
)

// slot is a single storage cell of a page.
//
// The generation encodes the slot state: even means free, odd means occupied.
// Every free<->occupied transition increments it by one, so a weak handle
// captured at generation g stays valid exactly as long as the value it was
// issued for. The counter is 64 bits wide and is never wrapped in practice.
type slot[T any] struct {
	item T

	gen  uint64
	refs uint32

	// Index of the next free slot within the page. Only meaningful while the
	// slot is free.
	next uint32
}

func (s *slot[T]) occupied() bool {
	return s.gen&1 == 1
}

func (s *slot[T]) get() *T {
	switch s.refs {
	case 0:
		panic("BUG: rcpool: access to a slot without strong references")
	case exclusive:
		panic("rcpool: already borrowed as mutable")
	}

	return &s.item
}

func (s *slot[T]) getMut() *T {
	if s.refs != exclusive {
		panic("BUG: rcpool: mutable access to a slot that is not exclusively borrowed")
	}

	return &s.item
}

func (s *slot[T]) setValue(v T) {
	if s.occupied() || s.refs != 0 {
		panic("BUG: rcpool: write into an occupied slot")
	}

	s.item = v
	s.gen++
}

// takeItem moves the value out and marks the slot free. Linking the slot into
// the free list is the page's job.
func (s *slot[T]) takeItem() T {
	if !s.occupied() {
		panic("BUG: rcpool: take from a free slot")
	}

	if s.refs != 0 {
		panic("rcpool: can't take item with strong references")
	}

	var zero T

	v := s.item
	s.item = zero
	s.gen++

	return v
}

// retain adds a strong reference.
func (s *slot[T]) retain() {
	switch s.refs {
	case exclusive:
		panic("rcpool: already borrowed as mutable")
	case exclusive - 1:
		panic("rcpool: strong reference count overflow")
	}

	s.refs++
}
