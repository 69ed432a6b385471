package rcpool

// Strong is a counted reference to a value stored in a pool.
//
// Every Strong must be released exactly once, either with Release or by one of
// the methods taking the value out (TakeItem, Remove and their Try variants).
// Using a released reference panics. In Automatic mode releasing the last
// strong reference frees the slot.
type Strong[T any] struct {
	pool     *Pool[T]
	loc      location
	released bool
}

func (s *Strong[T]) slot() *slot[T] {
	if s.released {
		panic("rcpool: use of a released strong reference")
	}

	return s.pool.slot(s.loc)
}

// Returns a pointer to the stored value.
// The value is shared by every reference to the slot and must not be modified
// through this pointer, use TryGetMut or Update instead.
func (s *Strong[T]) Get() *T {
	return s.slot().get()
}

// Returns a new strong reference to the same value.
// Panics if the value is borrowed as mutable.
func (s *Strong[T]) Clone() *Strong[T] {
	s.slot().retain()

	return &Strong[T]{pool: s.pool, loc: s.loc}
}

func (s *Strong[T]) Release() {
	sl := s.slot()
	if sl.refs == exclusive {
		panic("rcpool: release of a reference borrowed as mutable")
	}

	sl.refs--
	s.released = true

	if sl.refs == 0 && s.pool.mode == Automatic {
		s.pool.reclaim(s.loc)
	}
}

// Returns a weak reference to the value. The reference count is unchanged.
func (s *Strong[T]) Weak() Weak[T] {
	return Weak[T]{pool: s.pool, loc: s.loc, gen: s.slot().gen}
}

// Returns the number of strong references to the value. A value borrowed as
// mutable has exactly one.
func (s *Strong[T]) StrongCount() int {
	refs := s.slot().refs
	if refs == exclusive {
		return 1
	}

	return int(refs)
}

func (s *Strong[T]) IsUnique() bool {
	return s.slot().refs == 1
}

// Reports whether the value is currently borrowed as mutable.
func (s *Strong[T]) IsBorrowed() bool {
	return s.slot().refs == exclusive
}

// Returns the linear index of the slot, usable with Pool.Get.
func (s *Strong[T]) Index() int {
	s.slot()

	return s.pool.pages[s.loc.page].base + int(s.loc.slot)
}

// Reports whether both references point at the same slot.
func (s *Strong[T]) Equal(other *Strong[T]) bool {
	return s.pool == other.pool && s.loc == other.loc
}

// Borrows the value for mutation. Succeeds only if s is the single strong
// reference. Until the returned RefMut is released, no other reference to the
// value can be created.
func (s *Strong[T]) TryGetMut() (*RefMut[T], bool) {
	sl := s.slot()
	if sl.refs != 1 {
		return nil, false
	}

	sl.refs = exclusive

	return &RefMut[T]{owner: s}, true
}

// Like TryGetMut, but panics if s isn't the single strong reference.
func (s *Strong[T]) GetMut() *RefMut[T] {
	m, ok := s.TryGetMut()
	if !ok {
		panic("rcpool: more than one strong reference")
	}

	return m
}

// Calls fn with the value borrowed as mutable. Returns false without calling
// fn if s isn't the single strong reference.
func (s *Strong[T]) Update(fn func(v *T)) bool {
	m, ok := s.TryGetMut()
	if !ok {
		return false
	}
	defer m.Release()

	fn(m.Get())

	return true
}

// Moves the value out of the pool and frees its slot, in either mode.
// Succeeds only if s is the single strong reference; s is released then.
func (s *Strong[T]) TryTakeItem() (T, bool) {
	sl := s.slot()
	if sl.refs != 1 {
		var zero T

		return zero, false
	}

	sl.refs = 0
	s.released = true

	return s.pool.reclaim(s.loc), true
}

// Like TryTakeItem, but panics if other strong references exist.
func (s *Strong[T]) TakeItem() T {
	v, ok := s.TryTakeItem()
	if !ok {
		panic("rcpool: can't take item with strong references")
	}

	return v
}

// Like TryTakeItem, discarding the value.
func (s *Strong[T]) TryRemove() bool {
	_, ok := s.TryTakeItem()

	return ok
}

// Like TakeItem, discarding the value.
func (s *Strong[T]) Remove() {
	_ = s.TakeItem()
}

// RefMut is an exclusive, mutable view of a pooled value.
type RefMut[T any] struct {
	owner *Strong[T]
	done  bool
}

func (m *RefMut[T]) Get() *T {
	if m.done {
		panic("rcpool: use of a released mutable reference")
	}

	return m.owner.slot().getMut()
}

// Ends the exclusive borrow. The owning reference becomes the single strong
// reference again.
func (m *RefMut[T]) Release() {
	if m.done {
		panic("rcpool: mutable reference released twice")
	}

	m.owner.slot().refs = 1
	m.done = true
}
