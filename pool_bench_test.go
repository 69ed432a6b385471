package rcpool

import (
	"strconv"
	"testing"
)

var sizes = []int{
	64,
	4096,
	1 << 16,
}

type payload struct {
	id   uint64
	data [6]uint64
}

func BenchmarkInsertRelease(b *testing.B) {
	b.Run("variant=heap", benchSimulateLoad(benchmarkHeapInsertRelease))
	b.Run("variant=pool", benchSimulateLoad(benchmarkPoolInsertRelease))
}

func BenchmarkWeakStrong(b *testing.B) {
	b.Run("variant=pool", benchSimulateLoad(benchmarkPoolWeakStrong))
}

func BenchmarkAll(b *testing.B) {
	b.Run("variant=pool", benchSimulateLoad(benchmarkPoolAll))
}

func benchmarkHeapInsertRelease(b *testing.B, pageLen int) {
	live := make([]*payload, pageLen)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		live[i%pageLen] = &payload{id: uint64(i)}
	}
}

func benchmarkPoolInsertRelease(b *testing.B, pageLen int) {
	p := New[payload](pageLen)
	live := make([]*Strong[payload], pageLen)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % pageLen
		if live[j] != nil {
			live[j].Release()
		}

		live[j] = p.Insert(payload{id: uint64(i)})
	}
}

func benchmarkPoolWeakStrong(b *testing.B, pageLen int) {
	p := New[payload](pageLen)
	weaks := make([]Weak[payload], pageLen)

	for i := range weaks {
		weaks[i] = p.Insert(payload{id: uint64(i)}).Weak()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, ok := weaks[i%pageLen].Strong()
		if ok {
			s.Release()
		}
	}
}

func benchmarkPoolAll(b *testing.B, pageLen int) {
	p := New[payload](pageLen)

	for i := range pageLen {
		p.Insert(payload{id: uint64(i)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint64
		for s := range p.All() {
			sum += s.Get().id
		}

		_ = sum
	}
}

func benchSimulateLoad(benchFunc func(b *testing.B, pageLen int)) func(b *testing.B) {
	return func(b *testing.B) {
		for _, size := range sizes {
			b.Run("page_len="+strconv.Itoa(size), func(b *testing.B) {
				benchFunc(b, size)
			})
		}
	}
}
