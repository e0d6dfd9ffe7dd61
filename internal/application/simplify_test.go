package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sam-annotator/internal/domain/entity"
)

func TestMinGap(t *testing.T) {
	require.Equal(t, 10000.0, MinGap(nil))
	require.Equal(t, 10000.0, MinGap([]entity.Point{{X: 1, Y: 1}}))
	require.Equal(t, 2.0, MinGap([]entity.Point{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: 4}, {X: 0, Y: 6}, {X: 0, Y: 26}}))
}

func TestSimplify_KeepsPointsBeyondThreshold(t *testing.T) {
	points := []entity.Point{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: 4}, {X: 0, Y: 6}, {X: 0, Y: 26}}

	// minGap = 2, порог 3: (0,2) ближе порога к (0,0), (0,4) уже дальше
	got := Simplify(points)
	require.Equal(t, []entity.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 0, Y: 26}}, got)
	require.Equal(t, entity.Point{X: 0, Y: 0}, points[0])
	require.Len(t, points, 5)
}

func TestSimplify_UniformSpacingDecimates(t *testing.T) {
	var points []entity.Point
	for i := 0; i < 10; i++ {
		points = append(points, entity.Point{X: float64(i), Y: 0})
	}

	got := Simplify(points)
	require.Equal(t, []entity.Point{{X: 0}, {X: 2}, {X: 4}, {X: 6}, {X: 8}}, got)
}

func TestSimplify_ShortInputs(t *testing.T) {
	require.Nil(t, Simplify(nil))
	one := []entity.Point{{X: 3, Y: 4}}
	require.Equal(t, one, Simplify(one))
}

func TestSimplifyWithThreshold_FixedPoint(t *testing.T) {
	points := []entity.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1.5, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 9, Y: 9}, {X: 9.2, Y: 9}}
	threshold := SimplifyFactor * MinGap(points)

	once := SimplifyWithThreshold(points, threshold)
	twice := SimplifyWithThreshold(once, threshold)

	require.Equal(t, once, twice)
	require.LessOrEqual(t, len(once), len(points))
	require.Equal(t, points[0], once[0])
}
