package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	text := "dog\n\n  cat \r\nbird\n"

	require.Equal(t, []string{"bird", "cat", "dog"}, ParseCategories(text, true))
	require.Equal(t, []string{"dog", "cat", "bird"}, ParseCategories(text, false))
	require.Empty(t, ParseCategories("\n \n", true))
}

func TestCategoryList_Resolve(t *testing.T) {
	c := NewCategoryList("bird", "cat", "dog")

	require.Equal(t, "cat", c.Resolve("1"))
	require.Equal(t, "dog", c.Resolve(" 2 "))
	require.Equal(t, "3", c.Resolve("3"))
	require.Equal(t, "-1", c.Resolve("-1"))
	require.Equal(t, "Object", c.Resolve("Object"))

	var empty *CategoryList
	require.Equal(t, "0", empty.Resolve("0"))
	require.Nil(t, empty.Names())
}

func TestCategoryList_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.txt")
	require.NoError(t, os.WriteFile(path, []byte("zebra\napple\n"), 0o644))

	c := NewCategoryList("old")
	require.NoError(t, c.LoadFile(path, true))
	require.Equal(t, []string{"apple", "zebra"}, c.Names())

	require.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.txt"), true))
	require.Equal(t, []string{"apple", "zebra"}, c.Names())
}
