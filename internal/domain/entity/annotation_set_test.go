package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func square(x, y float64) *Shape {
	return NewPolygon([]Point{{x, y}, {x + 10, y}, {x + 10, y + 10}, {x, y + 10}})
}

func withGroup(s *Shape, id int) *Shape {
	s.GroupID = NewGroupID(id)
	return s
}

func TestNextGroupID_Empty(t *testing.T) {
	require.Equal(t, 0, NewAnnotationSet().NextGroupID())
}

func TestNextGroupID_AllUngrouped(t *testing.T) {
	a := NewAnnotationSet(square(0, 0), square(20, 20))
	require.Equal(t, 0, a.NextGroupID())
}

func TestNextGroupID_MaxPlusOne(t *testing.T) {
	a := NewAnnotationSet(
		withGroup(square(0, 0), 0),
		withGroup(square(0, 0), 2),
		withGroup(square(0, 0), 5),
		square(0, 0),
	)
	require.Equal(t, 6, a.NextGroupID())
}

func TestCommit_Defaults(t *testing.T) {
	a := NewAnnotationSet(withGroup(square(0, 0), 3))
	proposal := []*Shape{square(0, 0), square(50, 50)}

	committed := a.Commit(proposal, "", nil)

	require.Len(t, committed, 2)
	require.Equal(t, 3, a.Len())
	for _, s := range committed {
		require.Equal(t, DefaultLabel, s.Label)
		require.Equal(t, 4, *s.GroupID)
	}
	// исходные фигуры гипотезы не меняются
	require.Nil(t, proposal[0].GroupID)
	require.NotSame(t, proposal[0], committed[0])
}

func TestCommit_ExplicitLabelAndGroup(t *testing.T) {
	a := NewAnnotationSet()
	committed := a.Commit([]*Shape{square(0, 0)}, "cat", NewGroupID(42))

	require.Len(t, committed, 1)
	require.Equal(t, "cat", committed[0].Label)
	require.Equal(t, 42, *committed[0].GroupID)
	require.Equal(t, 43, a.NextGroupID())
}

func TestCommit_EmptyIsNoop(t *testing.T) {
	a := NewAnnotationSet()
	require.Nil(t, a.Commit(nil, "cat", nil))
	require.Empty(t, a.Commit([]*Shape{{Type: ShapePolygon}}, "cat", nil))
	require.Equal(t, 0, a.Len())
}

func TestAdd_SkipsEmptyShapes(t *testing.T) {
	a := NewAnnotationSet(&Shape{Label: "empty", Type: ShapePolygon}, square(0, 0))
	require.Equal(t, 1, a.Len())
}

func TestRemove_ByIdentity(t *testing.T) {
	s1, s2 := square(0, 0), square(0, 0)
	a := NewAnnotationSet(s1, s2)

	require.Equal(t, 1, a.Remove(s1, square(0, 0)))
	require.Equal(t, 1, a.Len())
	require.Same(t, s2, a.At(0))

	require.Equal(t, 0, a.Remove(s1))
}

func TestReplace(t *testing.T) {
	s1 := square(0, 0)
	a := NewAnnotationSet(s1)
	next := s1.Clone()
	next.Label = "dog"

	require.True(t, a.Replace(s1, next))
	require.Same(t, next, a.At(0))
	require.False(t, a.Replace(s1, next))
}

func TestDuplicate_RemapsCollidingGroups(t *testing.T) {
	part1 := withGroup(square(0, 0), 1)
	part2 := withGroup(square(30, 0), 1)
	other := withGroup(square(60, 0), 4)
	loose := square(90, 0)
	a := NewAnnotationSet(part1, part2, other, loose)

	dups := a.Duplicate([]*Shape{part1, part2, loose}, Point{X: 5, Y: 5})

	require.Len(t, dups, 3)
	require.Equal(t, 7, a.Len())
	// части одного объекта получают один и тот же новый идентификатор
	require.Equal(t, 5, *dups[0].GroupID)
	require.Equal(t, 5, *dups[1].GroupID)
	require.Nil(t, dups[2].GroupID)
	require.Equal(t, Point{X: 5, Y: 5}, dups[0].Points[0])
	require.Equal(t, Point{X: 0, Y: 0}, part1.Points[0])
}

func TestDuplicate_PreservesFreeGroup(t *testing.T) {
	a := NewAnnotationSet(withGroup(square(0, 0), 0))
	clipboard := withGroup(square(0, 0), 7)

	dups := a.Duplicate([]*Shape{clipboard}, Point{})

	require.Len(t, dups, 1)
	require.Equal(t, 7, *dups[0].GroupID)
}

func TestSnapshotRestore(t *testing.T) {
	a := NewAnnotationSet(square(0, 0))
	snap := a.Snapshot()

	a.Commit([]*Shape{square(10, 10)}, "cat", nil)
	require.Equal(t, 2, a.Len())
	require.Equal(t, 1, snap.Len())

	a.Restore(snap)
	require.Equal(t, 1, a.Len())
}
