// Package rc provides counted references to plain heap values, with no pool
// behind them. They follow the same protocol as the pool references
// (rcpool.StrongRef and rcpool.WeakRef), so code written against the protocol
// runs on either.
//
// A value is dropped when its last strong reference is released. Weak
// references don't keep the allocation alive either: they're backed by
// runtime weak pointers, so once every strong reference is gone the memory can
// be collected.
package rc

import (
	"weak"

	"github.com/homier/rcpool"
)

type box[T any] struct {
	value  T
	strong int

	// Set while Update runs.
	borrowed bool
}

func (b *box[T]) shared() *box[T] {
	if b.borrowed {
		panic("rc: already borrowed as mutable")
	}

	return b
}

// Strong is a counted reference to a heap value. It must be released exactly
// once.
type Strong[T any] struct {
	b *box[T]
}

// Returns the single strong reference to a new heap value.
func New[T any](v T) *Strong[T] {
	return &Strong[T]{b: &box[T]{value: v, strong: 1}}
}

func (s *Strong[T]) live() *box[T] {
	if s.b == nil {
		panic("rc: use of a released strong reference")
	}

	return s.b
}

func (s *Strong[T]) Get() *T {
	return &s.live().shared().value
}

// Panics while the value is borrowed by Update.
func (s *Strong[T]) Clone() *Strong[T] {
	b := s.live().shared()
	b.strong++

	return &Strong[T]{b: b}
}

func (s *Strong[T]) Weak() Weak[T] {
	return Weak[T]{p: weak.Make(s.live())}
}

func (s *Strong[T]) StrongCount() int {
	return s.live().strong
}

func (s *Strong[T]) IsUnique() bool {
	return s.live().strong == 1
}

// Calls fn with the value if s is the only strong reference. No other
// reference to the value can be created or used while fn runs.
func (s *Strong[T]) Update(fn func(v *T)) bool {
	b := s.live()
	if b.strong != 1 || b.borrowed {
		return false
	}

	b.borrowed = true
	defer func() { b.borrowed = false }()

	fn(&b.value)

	return true
}

func (s *Strong[T]) Release() {
	b := s.live().shared()
	s.b = nil

	b.strong--
	if b.strong == 0 {
		var zero T
		b.value = zero
	}
}

// Weak is an uncounted reference to a heap value. The zero Weak is never
// valid.
type Weak[T any] struct {
	p weak.Pointer[box[T]]
}

func (w Weak[T]) IsValid() bool {
	b := w.p.Value()

	return b != nil && b.strong > 0
}

// Panics while the value is borrowed by Update.
func (w Weak[T]) Strong() (*Strong[T], bool) {
	b := w.p.Value()
	if b == nil || b.strong == 0 {
		return nil, false
	}

	b.shared()

	b.strong++

	return &Strong[T]{b: b}, true
}

var (
	_ rcpool.StrongRef[int, *Strong[int], Weak[int]] = (*Strong[int])(nil)
	_ rcpool.WeakRef[int, *Strong[int]]              = Weak[int]{}
)
