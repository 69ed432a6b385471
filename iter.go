package rcpool

import "iter"

// Iterator walks the occupied slots of a pool in linear index order: pages in
// creation order, slots in ascending order within a page. Free slots and
// values borrowed as mutable are skipped.
//
// Slots inserted or removed behind the iterator's position are not revisited;
// whether changes ahead of it are observed depends only on the slot state at
// the time the iterator reaches it.
type Iterator[T any] struct {
	pool *Pool[T]
	page int
	slot uint32
}

// Returns an iterator starting at the first slot of the pool.
func (p *Pool[T]) Iter() *Iterator[T] {
	return &Iterator[T]{pool: p}
}

// Returns a strong reference to the next value. The caller owns the reference
// and must release it.
func (it *Iterator[T]) Next() (*Strong[T], bool) {
	for it.page < len(it.pool.pages) {
		pg := it.pool.pages[it.page]

		if int(it.slot) >= pg.capacity() {
			it.page++
			it.slot = 0

			continue
		}

		idx := it.slot
		it.slot++

		if s, ok := pg.get(idx); ok && s.refs != exclusive {
			return it.pool.newStrong(location{page: pg.id, slot: idx}), true
		}
	}

	return nil, false
}

// All yields a strong reference to every value, see Iterator for ordering.
// Each reference is released after the yield returns unless the caller already
// released or took it; Clone it to keep it longer.
func (p *Pool[T]) All() iter.Seq[*Strong[T]] {
	return func(yield func(*Strong[T]) bool) {
		it := p.Iter()

		for {
			s, ok := it.Next()
			if !ok {
				return
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

// Values yields a copy of every stored value in the order of All.
func (p *Pool[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for s := range p.All() {
			if !yield(*s.Get()) {
				return
			}
		}
	}
}
