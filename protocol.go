package rcpool

// StrongRef is the protocol of counted references: Strong implements it on top
// of a pool, and rc.Strong on top of plain heap allocations. S is the strong
// reference type itself and W its weak counterpart.
type StrongRef[T, S, W any] interface {
	Get() *T
	Clone() S
	Weak() W
	StrongCount() int
	IsUnique() bool
	Update(fn func(v *T)) bool
	Release()
}

// WeakRef is the protocol of uncounted references matching StrongRef.
type WeakRef[T, S any] interface {
	Strong() (S, bool)
	IsValid() bool
}

var (
	_ StrongRef[int, *Strong[int], Weak[int]] = (*Strong[int])(nil)
	_ WeakRef[int, *Strong[int]]              = Weak[int]{}
)
