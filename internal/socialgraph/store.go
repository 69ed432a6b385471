package socialgraph

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/homier/rcpool"
	"github.com/homier/rcpool/rc"
)

// Store keeps players alive (or not) and enumerates them.
type Store interface {
	Insert(p Player) Ref
	// Each calls fn for every live player until it returns false. The Ref is
	// only valid during the call, Clone it to keep it.
	Each(fn func(r Ref) bool)
	Remove(l Link) error
	Len() int
	Name() string
}

// PoolStore stores players in an rcpool.Pool.
type PoolStore struct {
	pool *rcpool.Pool[Player]
}

func NewPoolStore(pageLen int, mode rcpool.Mode, logger *slog.Logger) *PoolStore {
	return &PoolStore{
		pool: rcpool.New(pageLen,
			rcpool.WithMode[Player](mode),
			rcpool.WithLogger[Player](logger),
		),
	}
}

func (s *PoolStore) Pool() *rcpool.Pool[Player] {
	return s.pool
}

func (s *PoolStore) Insert(p Player) Ref {
	return poolRef{s: s.pool.Insert(p)}
}

func (s *PoolStore) Each(fn func(r Ref) bool) {
	for r := range s.pool.All() {
		if !fn(poolRef{s: r}) {
			return
		}
	}
}

func (s *PoolStore) Remove(l Link) error {
	pl, ok := l.(poolLink)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignLink, l)
	}

	return s.pool.Remove(pl.w)
}

func (s *PoolStore) Len() int {
	return s.pool.Len()
}

func (s *PoolStore) Name() string {
	return "pool/" + s.pool.Mode().String()
}

// RcStore keeps players as plain counted heap values. It only remembers weak
// links, so a player lives as long as somebody holds a Ref to it.
type RcStore struct {
	links []Link
}

func NewRcStore() *RcStore {
	return &RcStore{}
}

func (s *RcStore) Insert(p Player) Ref {
	r := rcRef{s: rc.New(p)}
	s.links = append(s.links, r.Link())

	return r
}

func (s *RcStore) Each(fn func(r Ref) bool) {
	s.prune()

	for _, l := range s.links {
		r, ok := l.Resolve()
		if !ok {
			continue
		}

		cont := fn(r)
		r.Release()

		if !cont {
			return
		}
	}
}

func (s *RcStore) Remove(l Link) error {
	if _, ok := l.(rcLink); !ok {
		return fmt.Errorf("%w: %T", ErrForeignLink, l)
	}

	return ErrNotRemovable
}

func (s *RcStore) Len() int {
	s.prune()

	return len(s.links)
}

func (s *RcStore) Name() string {
	return "rc"
}

func (s *RcStore) prune() {
	s.links = slices.DeleteFunc(s.links, func(l Link) bool {
		return !l.Valid()
	})
}
