package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sam-annotator/internal/domain/entity"
)

func TestPolygonMask_Square(t *testing.T) {
	m := PolygonMask(rect(0, 0, 10, 10), entity.Size{Width: 20, Height: 20})

	require.Equal(t, 100, m.Area())
	require.True(t, m.At(0, 0))
	require.True(t, m.At(9, 9))
	require.False(t, m.At(10, 10))
}

func TestPolygonMask_Degenerate(t *testing.T) {
	size := entity.Size{Width: 5, Height: 5}
	require.Equal(t, 0, PolygonMask([]entity.Point{{X: 1, Y: 1}, {X: 3, Y: 3}}, size).Area())
	require.Equal(t, 0, PolygonMask(rect(0, 0, 3, 3), entity.Size{}).Area())
}

func TestIoU(t *testing.T) {
	size := entity.Size{Width: 30, Height: 30}
	a := rect(0, 0, 10, 10)
	b := rect(5, 0, 10, 10)

	require.InDelta(t, 1.0, PolygonIoU(a, a, size), 1e-9)
	require.InDelta(t, 1.0/3.0, PolygonIoU(a, b, size), 1e-9)
	require.InDelta(t, 0.0, PolygonIoU(a, rect(20, 20, 5, 5), size), 1e-9)
	require.Equal(t, 1.0, IoU(entity.NewMask(3, 3), entity.NewMask(3, 3)))
}
