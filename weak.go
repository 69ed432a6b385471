package rcpool

import (
	"errors"
	"iter"
)

// Weak references a pooled value without keeping it alive.
//
// A Weak remembers the slot generation it was issued at and is valid while
// the slot still has that generation, that is until the value is removed.
// Once a slot is reused, old weak references never resolve to the new value.
// Weak is a comparable value type and can be copied freely; the zero Weak is
// never valid.
type Weak[T any] struct {
	pool *Pool[T]
	loc  location
	gen  uint64
}

func (w Weak[T]) IsValid() bool {
	return w.pool != nil && w.pool.slot(w.loc).gen == w.gen
}

// Returns the slot generation the reference was issued at.
func (w Weak[T]) Generation() uint64 {
	return w.gen
}

// Returns a strong reference if the value still exists. Fails with ErrStale
// if it was removed and with ErrBorrowed if it's borrowed as mutable.
func (w Weak[T]) TryStrong() (*Strong[T], error) {
	if !w.IsValid() {
		return nil, ErrStale
	}

	if w.pool.slot(w.loc).refs == exclusive {
		return nil, ErrBorrowed
	}

	return w.pool.newStrong(w.loc), nil
}

// Returns a strong reference if the value still exists.
// Panics if the value is borrowed as mutable, as that is a logic error of the
// caller rather than an expected outcome.
func (w Weak[T]) Strong() (*Strong[T], bool) {
	s, err := w.TryStrong()
	if errors.Is(err, ErrBorrowed) {
		panic(err.Error())
	}

	return s, err == nil
}

func (w Weak[T]) take() (T, error) {
	var zero T

	if !w.IsValid() {
		return zero, ErrStale
	}

	switch w.pool.slot(w.loc).refs {
	case 0:
	case exclusive:
		return zero, ErrBorrowed
	default:
		return zero, ErrInUse
	}

	return w.pool.reclaim(w.loc), nil
}

// Moves the value out of the pool. Succeeds only if the reference is valid
// and no strong references exist, which in Automatic mode never happens.
func (w Weak[T]) TryTakeItem() (T, bool) {
	v, err := w.take()

	return v, err == nil
}

// Like TryTakeItem, but panics on failure.
func (w Weak[T]) TakeItem() T {
	v, err := w.take()
	if err != nil {
		panic("rcpool: can't take item: " + err.Error())
	}

	return v
}

// Like TryTakeItem, discarding the value.
func (w Weak[T]) TryRemove() bool {
	_, err := w.take()

	return err == nil
}

// Like TakeItem, discarding the value.
func (w Weak[T]) Remove() {
	_ = w.TakeItem()
}

// Strongs yields a strong reference for every valid weak reference in ws.
// Each reference is released after the yield returns, Clone it to keep it.
func Strongs[T any](ws []Weak[T]) iter.Seq[*Strong[T]] {
	return func(yield func(*Strong[T]) bool) {
		for _, w := range ws {
			s, ok := w.Strong()
			if !ok {
				continue
			}

			cont := yield(s)
			if !s.released {
				s.Release()
			}

			if !cont {
				return
			}
		}
	}
}
