package entity

import "math"

// Point точка в пиксельных координатах изображения.
type Point struct {
	X float64
	Y float64
}

// Add сдвигает точку на вектор offset.
func (p Point) Add(offset Point) Point {
	return Point{X: p.X + offset.X, Y: p.Y + offset.Y}
}

// Scale умножает обе координаты на k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Distance возвращает евклидово расстояние до q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Box прямоугольная подсказка, заданная двумя углами в порядке ввода.
type Box struct {
	Min Point
	Max Point
}

// Normalized упорядочивает углы так, чтобы Min был левым верхним.
func (b Box) Normalized() Box {
	return Box{
		Min: Point{X: math.Min(b.Min.X, b.Max.X), Y: math.Min(b.Min.Y, b.Max.Y)},
		Max: Point{X: math.Max(b.Min.X, b.Max.X), Y: math.Max(b.Min.Y, b.Max.Y)},
	}
}

// Scale умножает координаты обоих углов на k.
func (b Box) Scale(k float64) Box {
	return Box{Min: b.Min.Scale(k), Max: b.Max.Scale(k)}
}

// Size размер изображения в пикселях.
type Size struct {
	Width  int
	Height int
}

// Empty сообщает, что у изображения нет пикселей.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}
