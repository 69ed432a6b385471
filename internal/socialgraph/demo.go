package socialgraph

// DemoNames are the players Populate adds, in insertion order.
var DemoNames = []string{"Sune", "Berra", "Arne", "Svenne"}

var demoFriendships = [][2]int{
	{0, 1}, {0, 2}, {0, 3},
	{1, 0}, {1, 2},
	{2, 1}, {2, 3},
	{3, 0},
}

// Populate adds the demo players, links them up and releases the reference to
// the last one. It returns the references it still holds, in DemoNames order.
func Populate(g *Game) ([]Ref, error) {
	refs := make([]Ref, len(DemoNames))
	for i, name := range DemoNames {
		refs[i] = g.AddPlayer(name)
	}

	for _, f := range demoFriendships {
		if err := g.Befriend(refs[f[0]], refs[f[1]]); err != nil {
			ReleaseAll(refs)

			return nil, err
		}
	}

	last := len(refs) - 1
	refs[last].Release()

	return refs[:last], nil
}

func ReleaseAll(refs []Ref) {
	for _, r := range refs {
		r.Release()
	}
}
