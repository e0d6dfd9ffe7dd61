package app

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// MinContourArea контуры меньшей площади отбрасываются, если контуров больше одного.
const MinContourArea = 100

// PolygonConverter превращает бинарную маску в набор полигонов.
type PolygonConverter struct {
	finder port.ContourFinder
}

// NewPolygonConverter создаёт конвертер поверх поиска контуров.
func NewPolygonConverter(finder port.ContourFinder) *PolygonConverter {
	return &PolygonConverter{finder: finder}
}

// Convert возвращает по полигону на каждый сохранённый контур, включая контуры дыр.
// Единственный контур сохраняется всегда. Пустая маска даёт пустой список.
func (c *PolygonConverter) Convert(mask entity.Mask) []*entity.Shape {
	contours := c.finder.FindContours(mask)

	shapes := make([]*entity.Shape, 0, len(contours))
	for _, contour := range contours {
		if len(contour) == 0 {
			continue
		}
		if len(contours) > 1 && ContourArea(contour) < MinContourArea {
			continue
		}
		points := make([]entity.Point, len(contour))
		copy(points, contour)
		shapes = append(shapes, entity.NewPolygon(points))
	}
	return shapes
}

// ContourArea площадь многоугольника по формуле шнурования.
func ContourArea(contour []entity.Point) float64 {
	if len(contour) < 3 {
		return 0
	}
	ring := make(orb.Ring, 0, len(contour)+1)
	for _, p := range contour {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return math.Abs(planar.Area(ring))
}
