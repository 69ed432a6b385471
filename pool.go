package rcpool

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"
)

// Mode selects when a value is reclaimed.
type Mode uint8

const (
	// Automatic frees a slot as soon as its last strong reference is released.
	Automatic Mode = iota

	// Manual keeps values in place until they're explicitly removed, even
	// with no strong references left. Such values can still be reached
	// through Get, Iter and weak references.
	Manual
)

func (m Mode) String() string {
	switch m {
	case Automatic:
		return "automatic"
	case Manual:
		return "manual"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// location addresses a slot by page id and slot index.
type location struct {
	page uint32
	slot uint32
}

// Pool is a paged storage of values addressed by generation-checked, counted
// references.
//
// A pool grows by whole pages and never shrinks or moves a value, so a slot
// keeps its identity (Strong.Index) for as long as it's occupied. Freed slots
// are reused in LIFO order; every reuse bumps the slot generation, which is
// how weak references tell a stale slot from a live one.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	// Pages in creation order. pages[i].id == i.
	pages []*page[T]

	// Head of the list of pages with at least one free slot.
	firstFree *page[T]
	freePages int

	pageLen  int
	size     int
	capacity int
	growths  int

	mode   Mode
	logger *slog.Logger
}

type Option[T any] func(p *Pool[T])

// Sets the reclaim mode. Defaults to Automatic.
func WithMode[T any](m Mode) Option[T] {
	return func(p *Pool[T]) {
		p.mode = m
	}
}

// Shorthand for WithMode(Manual).
func WithManualReclaim[T any]() Option[T] {
	return WithMode[T](Manual)
}

// Sets the logger page allocations are reported to.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(p *Pool[T]) {
		p.logger = l
	}
}

// Returns a new pool with one page of pageLen slots.
// Pages allocated when the pool grows have pageLen slots as well, see SetPageLen.
func New[T any](pageLen int, opts ...Option[T]) *Pool[T] {
	checkPageLen(pageLen)

	p := &Pool[T]{pageLen: pageLen}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}

	p.addPage(pageLen)

	return p
}

func checkPageLen(n int) {
	if n < 1 || n > math.MaxUint32-1 {
		panic(fmt.Sprintf("rcpool: invalid page length %d", n))
	}
}

func (p *Pool[T]) Mode() Mode {
	return p.mode
}

// Returns the number of slots of pages created from now on.
func (p *Pool[T]) PageLen() int {
	return p.pageLen
}

// Sets the number of slots of pages created from now on. Existing pages keep
// their length.
func (p *Pool[T]) SetPageLen(n int) {
	checkPageLen(n)

	p.logger.Debug("page length changed", "from", p.pageLen, "to", n)
	p.pageLen = n
}

// Number of values stored, including manual-mode values without strong
// references.
func (p *Pool[T]) Len() int {
	return p.size
}

// Total number of slots over all pages.
func (p *Pool[T]) Cap() int {
	return p.capacity
}

func (p *Pool[T]) IsEmpty() bool {
	return p.size == 0
}

func (p *Pool[T]) Stats() Stats {
	return Stats{
		Size:      p.size,
		Capacity:  p.capacity,
		Pages:     len(p.pages),
		FreePages: p.freePages,
		Growths:   p.growths,
		PageLen:   p.pageLen,
		LoadRatio: float32(p.size) / float32(p.capacity),
	}
}

// Inserts a value, growing the pool by a page if every slot is taken.
func (p *Pool[T]) Insert(v T) *Strong[T] {
	pg := p.firstFree
	if pg == nil {
		pg = p.addPage(p.pageLen)
		p.growths++
	}

	return p.insertInto(pg, v)
}

// Inserts a value if a free slot exists, never allocating a page.
// On ErrPoolFull the pool didn't keep v, the caller still owns it.
func (p *Pool[T]) TryInsert(v T) (*Strong[T], error) {
	if p.firstFree == nil {
		return nil, ErrPoolFull
	}

	return p.insertInto(p.firstFree, v), nil
}

func (p *Pool[T]) insertInto(pg *page[T], v T) *Strong[T] {
	idx := pg.insert(v)
	p.size++

	if pg.full() {
		p.unlinkFull(pg)
	}

	return p.newStrong(location{page: pg.id, slot: idx})
}

// Returns a strong reference to the value at the given linear index.
// Linear indices count slots over pages in creation order, see Strong.Index.
// Free slots and values currently borrowed as mutable are reported as absent.
func (p *Pool[T]) Get(index int) (*Strong[T], bool) {
	if index < 0 || index >= p.capacity {
		return nil, false
	}

	i, found := slices.BinarySearchFunc(p.pages, index, func(pg *page[T], target int) int {
		return cmp.Compare(pg.base, target)
	})
	if !found {
		i--
	}

	pg := p.pages[i]

	s, ok := pg.get(uint32(index - pg.base))
	if !ok || s.refs == exclusive {
		return nil, false
	}

	return p.newStrong(location{page: pg.id, slot: uint32(index - pg.base)}), true
}

// Removes the value a weak reference points to and discards it.
func (p *Pool[T]) Remove(w Weak[T]) error {
	_, err := p.Take(w)

	return err
}

// Moves the value a weak reference points to out of the pool. The value must
// have no strong references left.
func (p *Pool[T]) Take(w Weak[T]) (T, error) {
	if w.pool != p {
		var zero T

		return zero, ErrForeignRef
	}

	return w.take()
}

func (p *Pool[T]) slot(loc location) *slot[T] {
	return &p.pages[loc.page].slots[loc.slot]
}

func (p *Pool[T]) newStrong(loc location) *Strong[T] {
	p.slot(loc).retain()

	return &Strong[T]{pool: p, loc: loc}
}

// reclaim frees an occupied slot with no strong references and returns its
// value.
func (p *Pool[T]) reclaim(loc location) T {
	pg := p.pages[loc.page]

	v, wasFull := pg.free(loc.slot)
	p.size--

	if wasFull {
		p.linkFree(pg)
	}

	return v
}

func (p *Pool[T]) addPage(n int) *page[T] {
	pg := newPage[T](uint32(len(p.pages)), p.capacity, n)

	p.pages = append(p.pages, pg)
	p.capacity += n
	p.linkFree(pg)

	p.logger.Debug("page allocated",
		"page", pg.id,
		"page_len", n,
		"capacity", p.capacity,
	)

	return pg
}

// linkFree pushes a page that has free space on top of the free page list, so
// the next insertion goes there.
func (p *Pool[T]) linkFree(pg *page[T]) {
	if pg.onFreeList {
		panic("BUG: rcpool: page is already on the free list")
	}

	pg.nextFree = p.firstFree
	pg.onFreeList = true
	p.firstFree = pg
	p.freePages++
}

// unlinkFull drops a page that just filled up from the free page list.
// Insertions always go to the list head, so pg is expected to be the head.
func (p *Pool[T]) unlinkFull(pg *page[T]) {
	if p.firstFree != pg {
		panic("BUG: rcpool: filled page is not the free list head")
	}

	p.firstFree = pg.nextFree
	pg.nextFree = nil
	pg.onFreeList = false
	p.freePages--
}
