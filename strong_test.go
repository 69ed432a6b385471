package rcpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	name    string
	balance int
}

func TestStrong_CloneRelease(t *testing.T) {
	p := New[int](4)
	s := p.Insert(1)

	clones := make([]*Strong[int], 0, 5)
	for i := range 5 {
		clones = append(clones, s.Clone())
		require.Equal(t, i+2, s.StrongCount())
	}

	for i, c := range clones {
		require.True(t, c.Equal(s))
		c.Release()
		require.Equal(t, 5-i, s.StrongCount())
	}

	require.True(t, s.IsUnique())
	require.Equal(t, 1, p.Len())
}

func TestStrong_Release_Automatic(t *testing.T) {
	p := New[int](4)
	s := p.Insert(1)
	idx := s.Index()
	w := s.Weak()

	c := s.Clone()
	s.Release()
	require.Equal(t, 1, p.Len(), "a clone keeps the value alive")
	require.True(t, w.IsValid())

	c.Release()
	require.True(t, p.IsEmpty())
	require.False(t, w.IsValid())

	_, ok := p.Get(idx)
	require.False(t, ok)
}

func TestStrong_Release_Manual(t *testing.T) {
	p := New(4, WithManualReclaim[int]())
	s := p.Insert(7)
	idx := s.Index()

	s.Release()
	require.Equal(t, 1, p.Len())

	g, ok := p.Get(idx)
	require.True(t, ok)
	require.Equal(t, 7, *g.Get())
	require.True(t, g.IsUnique())
}

func TestStrong_Released(t *testing.T) {
	p := New[int](4)
	s := p.Insert(1)
	keep := s.Clone()
	s.Release()

	assert.PanicsWithValue(t, "rcpool: use of a released strong reference", func() { s.Release() })
	assert.Panics(t, func() { s.Get() })
	assert.Panics(t, func() { s.Clone() })
	assert.Panics(t, func() { s.Weak() })

	require.Equal(t, 1, keep.StrongCount())
}

func TestStrong_TryGetMut(t *testing.T) {
	p := New[account](4)
	s := p.Insert(account{name: "alice", balance: 10})
	idx := s.Index()

	m, ok := s.TryGetMut()
	require.True(t, ok)
	require.True(t, s.IsBorrowed())
	require.Equal(t, 1, s.StrongCount())

	m.Get().balance += 5

	// No second accessor while borrowed.
	_, ok = s.TryGetMut()
	assert.False(t, ok)
	assert.PanicsWithValue(t, "rcpool: already borrowed as mutable", func() { s.Clone() })
	assert.PanicsWithValue(t, "rcpool: already borrowed as mutable", func() { s.Get() })

	w := s.Weak()
	_, err := w.TryStrong()
	assert.ErrorIs(t, err, ErrBorrowed)
	assert.Panics(t, func() { w.Strong() })

	_, ok = p.Get(idx)
	assert.False(t, ok)
	assert.Equal(t, 0, countAll(p))

	assert.Panics(t, func() { s.Release() })

	m.Release()
	assert.Panics(t, func() { m.Release() })
	assert.Panics(t, func() { m.Get() })

	require.False(t, s.IsBorrowed())
	require.Equal(t, 1, s.StrongCount())
	require.Equal(t, 15, s.Get().balance)

	c := s.Clone()
	require.Equal(t, 2, s.StrongCount())
	c.Release()
}

func TestStrong_GetMut_NoSharedView(t *testing.T) {
	p := New[int](4)
	s := p.Insert(1)

	m := s.GetMut()
	*m.Get() = 42

	require.Panics(t, func() { _ = s.Get() })
	require.False(t, s.Update(func(*int) {}), "no second borrow through the owner")

	m.Release()
	require.Equal(t, 42, *s.Get())
}

func TestStrong_TryGetMut_Shared(t *testing.T) {
	p := New[account](4)
	s := p.Insert(account{name: "bob"})
	c := s.Clone()

	_, ok := s.TryGetMut()
	require.False(t, ok)
	require.PanicsWithValue(t, "rcpool: more than one strong reference", func() { s.GetMut() })

	c.Release()

	m := s.GetMut()
	m.Get().name = "robert"
	m.Release()

	require.Equal(t, "robert", s.Get().name)
}

func TestStrong_Update(t *testing.T) {
	p := New[account](4)
	s := p.Insert(account{balance: 1})

	ok := s.Update(func(a *account) { a.balance *= 100 })
	require.True(t, ok)
	require.Equal(t, 100, s.Get().balance)
	require.True(t, s.IsUnique())

	c := s.Clone()
	called := false
	ok = s.Update(func(*account) { called = true })
	require.False(t, ok)
	require.False(t, called)
	c.Release()
}

func TestStrong_TakeItem(t *testing.T) {
	for _, mode := range []Mode{Automatic, Manual} {
		t.Run(mode.String(), func(t *testing.T) {
			p := New(4, WithMode[string](mode))
			s := p.Insert("foo")
			w := s.Weak()

			c := s.Clone()
			_, ok := s.TryTakeItem()
			require.False(t, ok)
			require.Panics(t, func() { s.TakeItem() })
			c.Release()

			require.Equal(t, "foo", s.TakeItem())
			require.True(t, p.IsEmpty())
			require.False(t, w.IsValid())
			require.Panics(t, func() { s.Get() })
		})
	}
}

func TestStrong_Remove(t *testing.T) {
	p := New(2, WithManualReclaim[int]())

	s := p.Insert(1)
	c := s.Clone()

	require.False(t, c.TryRemove())
	require.Equal(t, 2, s.StrongCount(), "failed remove keeps the reference")
	c.Release()

	s.Remove()
	require.True(t, p.IsEmpty())
	require.Panics(t, func() { s.Remove() })
}

func TestStrong_Index(t *testing.T) {
	p := New[int](2)

	for i := range 5 {
		s := p.Insert(i)
		require.Equal(t, i, s.Index())
	}
}

func countAll[T any](p *Pool[T]) int {
	n := 0
	for range p.All() {
		n++
	}

	return n
}
