package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Nil(t, u.Session)
}

func TestUser_AttachDetach(t *testing.T) {
	u := NewUser(1, 10)
	s := NewAnnotationSession("a.jpg", nil, nil)

	u.Attach(s)
	require.Equal(t, StateAnnotating, u.State)
	require.Same(t, s, u.Session)

	u.Detach()
	require.Equal(t, StateMainMenu, u.State)
	require.Nil(t, u.Session)
}
