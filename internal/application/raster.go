package app

import (
	"image"

	"golang.org/x/image/vector"

	"sam-annotator/internal/domain/entity"
)

// PolygonMask растеризует замкнутый полигон в бинарную маску размера size.
// Пиксель считается внутренним, если покрыт хотя бы наполовину.
func PolygonMask(points []entity.Point, size entity.Size) entity.Mask {
	mask := entity.NewMask(size.Width, size.Height)
	if len(points) < 3 || size.Empty() {
		return mask
	}

	r := vector.NewRasterizer(size.Width, size.Height)
	r.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, size.Width, size.Height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if dst.Pix[y*dst.Stride+x] >= 0x80 {
				mask.Pix[y*mask.Width+x] = 1
			}
		}
	}
	return mask
}

// IoU отношение пересечения масок к объединению. Две пустые маски совпадают полностью.
func IoU(a, b entity.Mask) float64 {
	var inter, union int
	n := min(len(a.Pix), len(b.Pix))
	for i := 0; i < n; i++ {
		av, bv := a.Pix[i] != 0, b.Pix[i] != 0
		if av && bv {
			inter++
		}
		if av || bv {
			union++
		}
	}
	for _, v := range a.Pix[n:] {
		if v != 0 {
			union++
		}
	}
	for _, v := range b.Pix[n:] {
		if v != 0 {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// PolygonIoU IoU двух полигонов, растеризованных в общем кадре size.
func PolygonIoU(a, b []entity.Point, size entity.Size) float64 {
	return IoU(PolygonMask(a, size), PolygonMask(b, size))
}
