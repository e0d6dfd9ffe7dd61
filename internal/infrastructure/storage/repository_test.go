package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// runRepositoryContract общие проверки для всех реализаций AnnotationRepository.
func runRepositoryContract(t *testing.T, repo port.AnnotationRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Load(ctx, "images/cat.jpg")
	require.ErrorIs(t, err, entity.ErrAnnotationNotFound)

	doc := sampleDocument()
	require.NoError(t, repo.Save(ctx, doc))

	got, err := repo.Load(ctx, "other/dir/cat.png")
	require.NoError(t, err, "lookup is by base name")
	require.Len(t, got.Shapes, 2)
	require.Equal(t, "cat", got.Shapes[0].Label)

	// перезапись
	doc.Shapes = doc.Shapes[:1]
	require.NoError(t, repo.Save(ctx, doc))
	got, err = repo.Load(ctx, doc.ImagePath)
	require.NoError(t, err)
	require.Len(t, got.Shapes, 1)
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	runRepositoryContract(t, repo)

	_, err := os.Stat(filepath.Join(dir, "cat.json"))
	require.NoError(t, err)

	files, err := repo.Files()
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "cat.json")}, files)
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	runRepositoryContract(t, repo)

	// загруженный документ не связан с хранимым
	got, err := repo.Load(context.Background(), "cat.jpg")
	require.NoError(t, err)
	got.Shapes[0].Label = "dog"
	again, err := repo.Load(context.Background(), "cat.jpg")
	require.NoError(t, err)
	require.Equal(t, "cat", again.Shapes[0].Label)
}

func TestRedisRepository(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	repo := NewRedisRepositoryFromClient(client, WithPrefix("test:"), WithTTL(time.Hour))
	defer repo.Close()

	require.NoError(t, repo.Ping(context.Background()))
	runRepositoryContract(t, repo)

	require.True(t, mr.Exists("test:cat.json"))
	require.Equal(t, time.Hour, mr.TTL("test:cat.json"))

	mr.FastForward(2 * time.Hour)
	_, err = repo.Load(context.Background(), "cat.jpg")
	require.ErrorIs(t, err, entity.ErrAnnotationNotFound)
}

func TestDirImageSource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.jpeg", "notes.txt", "d.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	src := NewDirImageSource()
	images, err := src.List(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "d.jpg"),
	}, images)

	data, err := src.Read(context.Background(), images[1])
	require.NoError(t, err)
	require.Equal(t, []byte("b.png"), data)

	_, err = src.Read(context.Background(), filepath.Join(dir, "missing.png"))
	require.Error(t, err)
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	same, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, user, same)
	require.Equal(t, 0, repo.ActiveSessions())

	user.Attach(entity.NewAnnotationSession("a.jpg", nil, nil))
	require.NoError(t, repo.Save(ctx, user))
	require.Equal(t, 1, repo.ActiveSessions())

	require.NoError(t, repo.Delete(ctx, 1))
	fresh, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.NotSame(t, user, fresh)
	require.Nil(t, fresh.Session)
}
