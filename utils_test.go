package rcpool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPageLenFromSize(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		sizeOfSlot := unsafe.Sizeof(slot[int]{})

		tests := []struct {
			name string
			size uintptr
			want int
		}{
			{"zero", 0, 0},
			{"less than one slot", sizeOfSlot - 1, 0},
			{"exactly one slot", sizeOfSlot, 1},
			{"one and a half slots", sizeOfSlot + sizeOfSlot/2, 1},
			{"ten slots", sizeOfSlot * 10, 10},
			{"1KB", 1024, int(1024 / sizeOfSlot)},
			{"1MB", 1024 * 1024, int(1024 * 1024 / sizeOfSlot)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := PageLenFromSize[int](tt.size)
				require.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("string", func(t *testing.T) {
		sizeOfSlot := unsafe.Sizeof(slot[string]{})

		got := PageLenFromSize[string](sizeOfSlot * 5)
		require.Equal(t, 5, got)
	})

	t.Run("usage with New", func(t *testing.T) {
		pageLen := PageLenFromSize[int](64 * 1024)

		p := New[int](pageLen)
		require.Equal(t, pageLen, p.Cap())
	})
}
