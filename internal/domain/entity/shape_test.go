package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShape_CloneIsDeep(t *testing.T) {
	s := withGroup(square(0, 0), 2)
	s.Flags["occluded"] = true
	s.OtherData = map[string]any{"attrs": map[string]any{"color": "red"}, "tags": []any{"a"}}

	c := s.Clone()
	c.Points[0] = Point{X: 99, Y: 99}
	*c.GroupID = 9
	c.Flags["occluded"] = false
	c.OtherData["attrs"].(map[string]any)["color"] = "blue"
	c.OtherData["tags"].([]any)[0] = "b"

	require.Equal(t, Point{}, s.Points[0])
	require.Equal(t, 2, *s.GroupID)
	require.True(t, s.Flags["occluded"])
	require.Equal(t, "red", s.OtherData["attrs"].(map[string]any)["color"])
	require.Equal(t, "a", s.OtherData["tags"].([]any)[0])
}

func TestShape_Translate(t *testing.T) {
	s := square(0, 0)
	s.Translate(Point{X: 3, Y: -1})
	require.Equal(t, Point{X: 3, Y: -1}, s.Points[0])
	require.Equal(t, Point{X: 13, Y: 9}, s.Points[2])
}

func TestMask_Area(t *testing.T) {
	m := NewMask(10, 5)
	m.FillRect(2, 1, 6, 4)
	m.Set(-1, 0, true)
	m.Set(100, 0, true)

	require.Equal(t, 12, m.Area())
	require.True(t, m.At(2, 1))
	require.False(t, m.At(6, 1))
	require.False(t, m.At(-1, 0))
}
