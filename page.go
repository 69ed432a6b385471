package rcpool

// page is a fixed block of slots. Pages never move or shrink once created, so
// a (page id, slot index) pair identifies a slot for the lifetime of the pool.
type page[T any] struct {
	slots []slot[T]

	id   uint32
	base int // linear index of slots[0]

	// Head of the LIFO list of free slots, noSlot when the page is full.
	firstFree uint32
	live      uint32

	// Pages with free space form an intrusive list headed by the pool's
	// firstFree. onFreeList tells whether this page is currently linked.
	nextFree   *page[T]
	onFreeList bool
}

func newPage[T any](id uint32, base, capacity int) *page[T] {
	p := &page[T]{
		slots: make([]slot[T], capacity),
		id:    id,
		base:  base,
	}

	for i := range p.slots {
		p.slots[i].next = uint32(i + 1)
	}

	p.slots[capacity-1].next = noSlot

	return p
}

func (p *page[T]) len() int {
	return int(p.live)
}

func (p *page[T]) capacity() int {
	return len(p.slots)
}

func (p *page[T]) full() bool {
	return p.firstFree == noSlot
}

// insert writes v into the most recently freed slot and returns its index.
// The page must not be full.
func (p *page[T]) insert(v T) uint32 {
	if p.full() {
		panic("BUG: rcpool: insert into a full page")
	}

	idx := p.firstFree
	s := &p.slots[idx]
	s.setValue(v)

	p.firstFree = s.next
	p.live++

	return idx
}

// free takes the value out of an occupied slot and pushes the slot on top of
// the free list. It reports whether the page was full before the call.
func (p *page[T]) free(idx uint32) (T, bool) {
	wasFull := p.full()

	s := &p.slots[idx]
	v := s.takeItem()

	s.next = p.firstFree
	p.firstFree = idx
	p.live--

	return v, wasFull
}

// get returns the slot at idx if it's occupied.
func (p *page[T]) get(idx uint32) (*slot[T], bool) {
	if int(idx) >= len(p.slots) {
		return nil, false
	}

	s := &p.slots[idx]
	if !s.occupied() {
		return nil, false
	}

	return s, true
}
