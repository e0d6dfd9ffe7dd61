package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snapshotOf(n int) Snapshot {
	a := NewAnnotationSet()
	for i := 0; i < n; i++ {
		a.Add(square(float64(i), 0))
	}
	return a.Snapshot()
}

func TestEditHistory_PopEmpty(t *testing.T) {
	h := NewEditHistory()
	_, ok := h.Pop()
	require.False(t, ok)
	require.Equal(t, 0, h.Len())
}

func TestEditHistory_LIFO(t *testing.T) {
	h := NewEditHistory()
	h.Push(snapshotOf(1))
	h.Push(snapshotOf(2))

	s, ok := h.Pop()
	require.True(t, ok)
	require.Equal(t, 2, s.Len())

	s, ok = h.Pop()
	require.True(t, ok)
	require.Equal(t, 1, s.Len())

	_, ok = h.Pop()
	require.False(t, ok)
}

func TestEditHistory_EvictsOldest(t *testing.T) {
	h := NewEditHistory()
	for i := 0; i < HistoryCapacity+3; i++ {
		h.Push(snapshotOf(i))
	}
	require.Equal(t, HistoryCapacity, h.Len())

	var sizes []int
	for {
		s, ok := h.Pop()
		if !ok {
			break
		}
		sizes = append(sizes, s.Len())
	}
	require.Equal(t, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, sizes)
}

func TestEditHistory_Clear(t *testing.T) {
	h := NewEditHistory()
	h.Push(snapshotOf(1))
	h.Clear()
	require.Equal(t, 0, h.Len())
}
