package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/infrastructure/storage"
)

func denseSquare() []entity.Point {
	var pts []entity.Point
	for y := 0.0; y < 100; y++ {
		pts = append(pts, entity.Point{X: 0, Y: y})
	}
	for x := 0.0; x < 100; x++ {
		pts = append(pts, entity.Point{X: x, Y: 100})
	}
	for y := 100.0; y > 0; y-- {
		pts = append(pts, entity.Point{X: 100, Y: y})
	}
	for x := 100.0; x > 0; x-- {
		pts = append(pts, entity.Point{X: x, Y: 0})
	}
	return pts
}

func TestSimplifyDocument_SkipsNonPolygons(t *testing.T) {
	polygon := entity.NewPolygon(denseSquare())
	point := &entity.Shape{Label: "tip", Type: entity.ShapePoint, Points: []entity.Point{{X: 1, Y: 1}}}
	doc := &entity.AnnotationDocument{Shapes: []*entity.Shape{polygon, point}}

	before, after := simplifyDocument(doc)
	require.Equal(t, 400, before)
	require.Less(t, after, before)
	require.Len(t, doc.Shapes[1].Points, 1)
}

func TestRunSimplify_RewritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, storage.WriteAnnotationFile(path, &entity.AnnotationDocument{
		ImagePath:   "a.jpg",
		ImageHeight: 120,
		ImageWidth:  120,
		Shapes:      []*entity.Shape{entity.NewPolygon(denseSquare())},
	}))

	require.NoError(t, runSimplify(dir))

	doc, err := storage.ReadAnnotationFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 1)
	require.Less(t, len(doc.Shapes[0].Points), 400)
	require.Equal(t, "a.jpg", doc.ImagePath)
}

func TestRunSimplify_MissingDir(t *testing.T) {
	require.Error(t, runSimplify(filepath.Join(t.TempDir(), "missing")))
}
