//go:build !gocv
// +build !gocv

package vision

import (
	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// Соседи пикселя по часовой стрелке (ось Y направлена вниз), начиная с востока.
var neighbours = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// ContourFinder ищет контуры бинарной маски трассировкой границ (Suzuki–Abe)
// с полной топологией: внешние границы и границы дыр. Цепочки сжимаются до
// концов прямых участков, как ChainApproxSimple в OpenCV.
type ContourFinder struct{}

// NewContourFinder создаёт поиск контуров без OpenCV.
func NewContourFinder() *ContourFinder {
	return &ContourFinder{}
}

// FindContours возвращает контуры в порядке обхода растра.
func (f *ContourFinder) FindContours(mask entity.Mask) [][]entity.Point {
	if mask.Width <= 0 || mask.Height <= 0 {
		return nil
	}

	// рамка из нулей вокруг маски
	w, h := mask.Width+2, mask.Height+2
	img := make([]int, w*h)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Pix[y*mask.Width+x] != 0 {
				img[(y+1)*w+x+1] = 1
			}
		}
	}

	t := &tracer{img: img, w: w, limit: 4*w*h + 8}
	nbd := 1
	var contours [][]entity.Point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := img[y*w+x]
			var from [2]int
			switch {
			case v == 1 && img[y*w+x-1] == 0:
				from = [2]int{x - 1, y}
			case v >= 1 && img[y*w+x+1] == 0:
				from = [2]int{x + 1, y}
			default:
				continue
			}
			nbd++
			chain := t.follow(x, y, from, nbd)
			contours = append(contours, approxSimple(chain))
		}
	}
	return contours
}

type tracer struct {
	img   []int
	w     int
	limit int
}

func (t *tracer) at(x, y int) int {
	return t.img[y*t.w+x]
}

// direction номер соседа (nx, ny) относительно (x, y).
func direction(x, y, nx, ny int) int {
	for d, n := range neighbours {
		if x+n[0] == nx && y+n[1] == ny {
			return d
		}
	}
	return 0
}

// follow обходит границу, начинающуюся в (x0, y0), и помечает её пиксели номером nbd.
func (t *tracer) follow(x0, y0 int, from [2]int, nbd int) []entity.Point {
	start := entity.Point{X: float64(x0 - 1), Y: float64(y0 - 1)}

	// поиск первого ненулевого соседа по часовой стрелке
	d0 := direction(x0, y0, from[0], from[1])
	x1, y1, found := 0, 0, false
	for k := 0; k < 8; k++ {
		n := neighbours[(d0+k)%8]
		if t.at(x0+n[0], y0+n[1]) != 0 {
			x1, y1, found = x0+n[0], y0+n[1], true
			break
		}
	}
	if !found {
		// одиночный пиксель
		t.img[y0*t.w+x0] = -nbd
		return []entity.Point{start}
	}

	chain := []entity.Point{start}
	x2, y2 := x1, y1
	x3, y3 := x0, y0
	for step := 0; step < t.limit; step++ {
		// поиск против часовой стрелки, начиная со следующего за (x2, y2)
		d2 := direction(x3, y3, x2, y2)
		x4, y4 := x2, y2
		eastZero := false
		for k := 1; k <= 8; k++ {
			d := ((d2-k)%8 + 8) % 8
			n := neighbours[d]
			if t.at(x3+n[0], y3+n[1]) != 0 {
				x4, y4 = x3+n[0], y3+n[1]
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		switch {
		case eastZero:
			t.img[y3*t.w+x3] = -nbd
		case t.at(x3, y3) == 1:
			t.img[y3*t.w+x3] = nbd
		}

		if x4 == x0 && y4 == y0 && x3 == x1 && y3 == y1 {
			break
		}
		x2, y2 = x3, y3
		x3, y3 = x4, y4
		chain = append(chain, entity.Point{X: float64(x3 - 1), Y: float64(y3 - 1)})
	}
	return chain
}

// approxSimple оставляет только точки, где меняется направление цепочки.
func approxSimple(chain []entity.Point) []entity.Point {
	n := len(chain)
	if n < 3 {
		return chain
	}
	out := make([]entity.Point, 0, n)
	for i := 0; i < n; i++ {
		prev := chain[(i-1+n)%n]
		cur := chain[i]
		next := chain[(i+1)%n]
		if cur.X-prev.X == next.X-cur.X && cur.Y-prev.Y == next.Y-cur.Y {
			continue
		}
		out = append(out, cur)
	}
	if len(out) == 0 {
		return chain[:1]
	}
	return out
}

// Проверка реализации интерфейса
var _ port.ContourFinder = (*ContourFinder)(nil)
