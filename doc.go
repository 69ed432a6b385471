// Package rcpool is a paged object pool handing out counted strong and weak
// references to the values it owns.
//
// Values never move once inserted: the pool grows by appending pages of a fixed
// number of slots. Every slot carries a generation counter, so a weak reference
// to a slot that has since been freed and reused is detected as stale.
//
// A Pool is not safe for concurrent use.
package rcpool
