// Package socialgraph is a small graph of players befriending each other
// through weak links. It runs on top of an rcpool.Pool or of plain rc
// references and shows how the two reclaim modes of the pool behave.
package socialgraph

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/btree"
	"github.com/google/uuid"
)

type entry struct {
	name string
	id   uuid.UUID
	link Link
}

func (a entry) less(b entry) bool {
	if a.name != b.name {
		return a.name < b.name
	}

	return bytes.Compare(a.id[:], b.id[:]) < 0
}

// Game owns a player store and a name index over it.
// The index only holds weak links, so it never keeps a player alive.
type Game struct {
	store  Store
	byName *btree.BTreeG[entry]
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Game{
		store:  store,
		byName: btree.NewG(32, entry.less),
		logger: logger.With("store", store.Name()),
	}
}

func (g *Game) Store() Store {
	return g.store
}

func (g *Game) AddPlayer(name string) Ref {
	r := g.store.Insert(Player{
		ID:   uuid.New(),
		Name: name,
	})

	p := r.Player()
	g.byName.ReplaceOrInsert(entry{name: p.Name, id: p.ID, link: r.Link()})
	g.logger.Debug("player added", "name", p.Name, "id", p.ID)

	return r
}

// Befriend adds a weak link from a to b. a must be the only reference to its
// player.
func (g *Game) Befriend(a, b Ref) error {
	link := b.Link()

	ok := a.Update(func(p *Player) {
		p.Friends = append(p.Friends, link)
	})
	if !ok {
		return fmt.Errorf("%w: %s has %d references", ErrBusy, a.Player().Name, a.Count())
	}

	g.logger.Debug("friend added", "player", a.Player().Name, "friend", b.Player().Name)

	return nil
}

// Unfriend drops the link from a to b along with any link of a whose player
// is gone.
func (g *Game) Unfriend(a, b Ref) error {
	link := b.Link()

	ok := a.Update(func(p *Player) {
		p.Friends = slices.DeleteFunc(p.Friends, func(l Link) bool {
			return l == link || !l.Valid()
		})
	})
	if !ok {
		return fmt.Errorf("%w: %s has %d references", ErrBusy, a.Player().Name, a.Count())
	}

	return nil
}

// Find returns a reference to the first live player with the given name.
// Index entries of players that are gone are dropped along the way.
func (g *Game) Find(name string) (Ref, bool) {
	var (
		found Ref
		stale []entry
	)

	g.byName.AscendGreaterOrEqual(entry{name: name}, func(e entry) bool {
		if e.name != name {
			return false
		}

		r, ok := e.link.Resolve()
		if !ok {
			stale = append(stale, e)

			return true
		}

		found = r

		return false
	})

	for _, e := range stale {
		g.byName.Delete(e)
	}

	return found, found != nil
}

// Remove deletes the first player with the given name from the store.
// Nobody may hold a reference to it.
func (g *Game) Remove(name string) error {
	var target *entry

	g.byName.AscendGreaterOrEqual(entry{name: name}, func(e entry) bool {
		if e.name != name {
			return false
		}

		if e.link.Valid() {
			target = &e

			return false
		}

		return true
	})

	if target == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err := g.store.Remove(target.link); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}

	g.byName.Delete(*target)
	g.logger.Debug("player removed", "name", name, "id", target.id)

	return nil
}

// Len returns the number of players in the store.
func (g *Game) Len() int {
	return g.store.Len()
}
