package socialgraph

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

// View is a snapshot of a player with its friend links resolved.
type View struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Friends []string  `json:"friends"`
	// Links to players that are gone.
	Stale int `json:"stale,omitzero"`
}

// Players lists every live player in store order. Friend links are resolved
// on demand and links to removed players are counted as stale.
func (g *Game) Players() []View {
	var views []View

	g.store.Each(func(r Ref) bool {
		p := r.Player()
		v := View{
			ID:      p.ID,
			Name:    p.Name,
			Friends: make([]string, 0, len(p.Friends)),
		}

		for _, l := range p.Friends {
			f, ok := l.Resolve()
			if !ok {
				v.Stale++

				continue
			}

			v.Friends = append(v.Friends, f.Player().Name)
			f.Release()
		}

		views = append(views, v)

		return true
	})

	return views
}

func (g *Game) WriteText(w io.Writer) error {
	for _, v := range g.Players() {
		if _, err := fmt.Fprintln(w, v.Name); err != nil {
			return err
		}

		for _, f := range v.Friends {
			if _, err := fmt.Fprintf(w, "  %s\n", f); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

func (g *Game) WriteJSON(w io.Writer) error {
	out := struct {
		Store   string `json:"store"`
		Players []View `json:"players"`
	}{
		Store:   g.store.Name(),
		Players: g.Players(),
	}

	if err := json.MarshalWrite(w, out, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("encode players: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}
