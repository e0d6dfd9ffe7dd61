package app

import "sam-annotator/internal/domain/entity"

const (
	// SimplifyFactor точка остаётся, если отстоит от последней сохранённой больше чем на SimplifyFactor*minGap.
	SimplifyFactor = 1.5
	// noGap значение minGap для последовательности короче двух точек.
	noGap = 10000
)

// MinGap наименьшее расстояние между соседними точками, 10000 если точек меньше двух.
func MinGap(points []entity.Point) float64 {
	gap := float64(noGap)
	for i := 1; i < len(points); i++ {
		if d := points[i].Distance(points[i-1]); d < gap {
			gap = d
		}
	}
	return gap
}

// Simplify прореживает точки с порогом SimplifyFactor*MinGap(points).
// Повторный вызов может прореживать дальше, так как minGap пересчитывается.
func Simplify(points []entity.Point) []entity.Point {
	return SimplifyWithThreshold(points, SimplifyFactor*MinGap(points))
}

// SimplifyWithThreshold оставляет первую точку и каждую, что дальше threshold от последней оставленной.
// При одном и том же пороге результат повторного вызова не меняется.
func SimplifyWithThreshold(points []entity.Point, threshold float64) []entity.Point {
	if len(points) == 0 {
		return nil
	}
	kept := []entity.Point{points[0]}
	for _, p := range points[1:] {
		if p.Distance(kept[len(kept)-1]) > threshold {
			kept = append(kept, p)
		}
	}
	return kept
}
