package socialgraph

import (
	"github.com/google/uuid"

	"github.com/homier/rcpool"
	"github.com/homier/rcpool/rc"
)

type Player struct {
	ID      uuid.UUID
	Name    string
	Friends []Link
}

// Ref is a strong reference to a player, whatever storage backs it.
type Ref interface {
	Player() *Player
	Link() Link
	Clone() Ref
	Update(fn func(p *Player)) bool
	Count() int
	Release()
}

// Link is a weak reference to a player. Links are comparable.
type Link interface {
	Resolve() (Ref, bool)
	Valid() bool
}

// strongRef adapts any implementation of the reference protocol to Ref.
type strongRef[S rcpool.StrongRef[Player, S, W], W rcpool.WeakRef[Player, S]] struct {
	s S
}

func (r strongRef[S, W]) Player() *Player {
	return r.s.Get()
}

func (r strongRef[S, W]) Link() Link {
	return weakLink[S, W]{w: r.s.Weak()}
}

func (r strongRef[S, W]) Clone() Ref {
	return strongRef[S, W]{s: r.s.Clone()}
}

func (r strongRef[S, W]) Update(fn func(p *Player)) bool {
	return r.s.Update(fn)
}

func (r strongRef[S, W]) Count() int {
	return r.s.StrongCount()
}

func (r strongRef[S, W]) Release() {
	r.s.Release()
}

type weakLink[S rcpool.StrongRef[Player, S, W], W rcpool.WeakRef[Player, S]] struct {
	w W
}

func (l weakLink[S, W]) Resolve() (Ref, bool) {
	s, ok := l.w.Strong()
	if !ok {
		return nil, false
	}

	return strongRef[S, W]{s: s}, true
}

func (l weakLink[S, W]) Valid() bool {
	return l.w.IsValid()
}

type (
	poolRef  = strongRef[*rcpool.Strong[Player], rcpool.Weak[Player]]
	poolLink = weakLink[*rcpool.Strong[Player], rcpool.Weak[Player]]

	rcRef  = strongRef[*rc.Strong[Player], rc.Weak[Player]]
	rcLink = weakLink[*rc.Strong[Player], rc.Weak[Player]]
)
