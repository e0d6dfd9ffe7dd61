package app

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"sam-annotator/internal/domain/entity"
)

// DefaultMaxSize длинная сторона изображения в пространстве модели.
const DefaultMaxSize = 1080

// CoordinateTransformer переводит изображение и подсказки в пространство модели и
// возвращает маски обратно в исходный размер.
type CoordinateTransformer struct {
	KeepInputSize bool
	MaxSize       float64
}

// NewCoordinateTransformer создаёт преобразователь. maxSize <= 0 заменяется на DefaultMaxSize.
func NewCoordinateTransformer(keepInputSize bool, maxSize float64) *CoordinateTransformer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &CoordinateTransformer{KeepInputSize: keepInputSize, MaxSize: maxSize}
}

// Scale коэффициент масштабирования для изображения размера size.
func (t *CoordinateTransformer) Scale(size entity.Size) float64 {
	if t.KeepInputSize || size.Empty() {
		return 1
	}
	return t.MaxSize / float64(max(size.Width, size.Height))
}

// ToModelSpace масштабирует изображение, рамку и точки одним коэффициентом.
func (t *CoordinateTransformer) ToModelSpace(img image.Image, req entity.PredictRequest) (image.Image, entity.PredictRequest) {
	b := img.Bounds()
	scale := t.Scale(entity.Size{Width: b.Dx(), Height: b.Dy()})
	if scale == 1 {
		return img, req
	}

	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	resized := imaging.Resize(img, w, h, imaging.Linear)

	out := entity.PredictRequest{Labels: req.Labels}
	if req.Box != nil {
		box := req.Box.Scale(scale)
		out.Box = &box
	}
	if req.Points != nil {
		out.Points = make([]entity.Point, len(req.Points))
		for i, p := range req.Points {
			out.Points[i] = p.Scale(scale)
		}
	}
	return resized, out
}

// FromModelSpace возвращает каждую маску к исходному размеру ближайшим соседом.
func (t *CoordinateTransformer) FromModelSpace(masks []entity.Mask, original entity.Size) []entity.Mask {
	if t.KeepInputSize {
		return masks
	}
	out := make([]entity.Mask, len(masks))
	for i, m := range masks {
		out[i] = resizeMask(m, original)
	}
	return out
}

func resizeMask(m entity.Mask, size entity.Size) entity.Mask {
	if m.Width == size.Width && m.Height == size.Height {
		return m
	}
	src := maskToGray(m)
	dst := image.NewGray(image.Rect(0, 0, size.Width, size.Height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return grayToMask(dst)
}

func maskToGray(m entity.Mask) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			g.Pix[i] = 0xff
		}
	}
	return g
}

func grayToMask(g *image.Gray) entity.Mask {
	b := g.Bounds()
	m := entity.NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
		for x, v := range row {
			if v >= 0x80 {
				m.Pix[y*m.Width+x] = 1
			}
		}
	}
	return m
}
