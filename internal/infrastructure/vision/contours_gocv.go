//go:build gocv
// +build gocv

package vision

import (
	"gocv.io/x/gocv"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// ContourFinder ищет контуры бинарной маски через OpenCV с полной иерархией.
type ContourFinder struct{}

// NewContourFinder создаёт поиск контуров на OpenCV.
func NewContourFinder() *ContourFinder {
	return &ContourFinder{}
}

// FindContours возвращает внешние контуры и контуры дыр маски.
func (f *ContourFinder) FindContours(mask entity.Mask) [][]entity.Point {
	if mask.Width <= 0 || mask.Height <= 0 {
		return nil
	}

	pix := make([]byte, len(mask.Pix))
	for i, v := range mask.Pix {
		if v != 0 {
			pix[i] = 255
		}
	}
	mat, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8U, pix)
	if err != nil {
		return nil
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	out := make([][]entity.Point, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pts := contours.At(i).ToPoints()
		contour := make([]entity.Point, len(pts))
		for j, p := range pts {
			contour[j] = entity.Point{X: float64(p.X), Y: float64(p.Y)}
		}
		out = append(out, contour)
	}
	return out
}

// Проверка реализации интерфейса
var _ port.ContourFinder = (*ContourFinder)(nil)
