package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromptState_EmptyByDefault(t *testing.T) {
	var p PromptState
	require.True(t, p.Empty())
	require.Equal(t, PredictRequest{}, p.Request())
}

func TestPromptState_ClickClearsBox(t *testing.T) {
	p := NewBoxPrompt(Point{10, 10}, Point{50, 40})
	require.False(t, p.Empty())

	p = p.WithClick(Point{20, 20}, true)
	require.Equal(t, PromptClicks, p.Kind)
	require.Equal(t, Box{}, p.Box)
	require.Len(t, p.Positive, 1)
}

func TestPromptState_BoxClearsClicks(t *testing.T) {
	p := PromptState{}.WithClick(Point{1, 1}, true).WithClick(Point{2, 2}, false)
	p = NewBoxPrompt(Point{0, 0}, Point{5, 5})

	require.Equal(t, PromptBox, p.Kind)
	require.Empty(t, p.Positive)
	require.Empty(t, p.Negative)
}

func TestPromptState_RequestOrdersPositiveFirst(t *testing.T) {
	p := PromptState{}.
		WithClick(Point{1, 1}, false).
		WithClick(Point{2, 2}, true).
		WithClick(Point{3, 3}, true)

	req := p.Request()
	require.Equal(t, []Point{{2, 2}, {3, 3}, {1, 1}}, req.Points)
	require.Equal(t, []int{ClickPositive, ClickPositive, ClickNegative}, req.Labels)
	require.Nil(t, req.Box)
}

func TestPromptState_WithClickDoesNotAlias(t *testing.T) {
	base := PromptState{}.WithClick(Point{1, 1}, true)
	a := base.WithClick(Point{2, 2}, true)
	b := base.WithClick(Point{3, 3}, true)

	require.Equal(t, Point{2, 2}, a.Positive[1])
	require.Equal(t, Point{3, 3}, b.Positive[1])
}

func TestPromptState_BoxRequestNormalized(t *testing.T) {
	req := NewBoxPrompt(Point{50, 40}, Point{10, 10}).Request()
	require.NotNil(t, req.Box)
	require.Equal(t, Box{Min: Point{10, 10}, Max: Point{50, 40}}, *req.Box)
}
