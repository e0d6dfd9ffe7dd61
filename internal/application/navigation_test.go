package app

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/infrastructure/storage"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(image.NewNRGBA(image.Rect(0, 0, w, h)), path))
	return path
}

func TestNavigationService_OpenDirectoryEmpty(t *testing.T) {
	nav := NewNavigationService(storage.NewDirImageSource(), storage.NewMemoryRepository(), nil, nil)

	_, err := nav.OpenDirectory(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrNoImages)
}

func TestNavigationService_Walk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := writeImage(t, dir, "a.png", 40, 30)
	second := writeImage(t, dir, "b.jpg", 20, 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	repo := storage.NewMemoryRepository()
	saved := &entity.AnnotationDocument{
		ImagePath: second,
		Shapes: []*entity.Shape{
			{Label: "1", Type: entity.ShapePolygon, Points: rect(1, 1, 5, 5), GroupID: entity.NewGroupID(0)},
			{Label: "0", Type: entity.ShapePolygon},
		},
	}
	require.NoError(t, repo.Save(ctx, saved))

	nav := NewNavigationService(storage.NewDirImageSource(), repo, NewCategoryList("cat", "dog"), nil)
	annotations := NewAnnotationService(true, nil)

	s, err := nav.OpenDirectory(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, first, s.ImagePath)
	require.Equal(t, 0, s.Index)
	require.Equal(t, []string{first, second}, s.Images)
	require.Equal(t, entity.Size{Width: 40, Height: 30}, s.Size)
	require.False(t, s.HasPrevious())

	prev, err := nav.Previous(ctx, s)
	require.NoError(t, err)
	require.Same(t, s, prev)

	propose(s, squareShape(0, 0))
	annotations.Accept(s, &entity.LabelResult{Label: "cat"})
	require.True(t, s.Dirty)

	s, err = nav.Next(ctx, s)
	require.NoError(t, err)
	require.Equal(t, second, s.ImagePath)
	require.Equal(t, 1, s.Index)
	require.Equal(t, 1, s.Annotations.Len())
	require.Equal(t, "dog", s.Annotations.At(0).Label)
	require.Equal(t, 0, s.History.Len())
	require.False(t, s.HasNext())

	// первое изображение сохранено при переходе
	doc, err := repo.Load(ctx, first)
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 1)
	require.Equal(t, 40, doc.ImageWidth)
	require.Equal(t, 30, doc.ImageHeight)
	require.NotEmpty(t, doc.ImageData)

	last, err := nav.Next(ctx, s)
	require.NoError(t, err)
	require.Same(t, s, last)

	s, err = nav.Previous(ctx, s)
	require.NoError(t, err)
	require.Equal(t, first, s.ImagePath)
	require.Equal(t, 1, s.Annotations.Len())
	require.Equal(t, "cat", s.Annotations.At(0).Label)
	require.False(t, s.Dirty)
}

func TestNavigationService_OpenInvalidatesEncoding(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeImage(t, dir, "a.png", 40, 40)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	seg := &fakeSegmenter{pred: twoObjectPrediction()}
	segmentation := newTestSegmentation(seg, nil)
	nav := NewNavigationService(nil, storage.NewMemoryRepository(), nil, segmentation)

	s, err := nav.Open(ctx, path, data)
	require.NoError(t, err)
	segmentation.AddClick(s, entity.Point{X: 10, Y: 10}, true)
	_, err = segmentation.Predict(ctx, s)
	require.NoError(t, err)
	require.Equal(t, 1, seg.encodes)

	s, err = nav.Open(ctx, path, data)
	require.NoError(t, err)
	segmentation.AddClick(s, entity.Point{X: 10, Y: 10}, true)
	_, err = segmentation.Predict(ctx, s)
	require.NoError(t, err)
	require.Equal(t, 2, seg.encodes)
}

func TestNavigationService_SaveAndErrors(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewFileRepository(t.TempDir())
	nav := NewNavigationService(nil, repo, nil, nil)

	_, err := nav.Open(ctx, "broken.png", []byte("not an image"))
	require.Error(t, err)

	_, err = nav.OpenDirectory(ctx, t.TempDir())
	require.Error(t, err)

	path := writeImage(t, t.TempDir(), "c.png", 12, 12)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s, err := nav.Open(ctx, path, data)
	require.NoError(t, err)
	s.Annotations.Add(squareShape(0, 0))
	s.Dirty = true

	require.NoError(t, nav.Save(ctx, s))
	require.False(t, s.Dirty)

	doc, err := storage.ReadAnnotationFile(repo.Path(path))
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 1)
	require.Equal(t, path, doc.ImagePath)
}
