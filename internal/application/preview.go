package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"sam-annotator/internal/domain/entity"
)

var (
	committedTint = color.NRGBA{R: 0, G: 200, B: 0, A: 255}
	proposalTint  = color.NRGBA{R: 230, G: 40, B: 40, A: 255}
)

// RenderPreview рисует поверх изображения принятые фигуры (зелёным) и выбранную
// гипотезу (красным) и возвращает JPEG.
func RenderPreview(session *entity.AnnotationSession) ([]byte, error) {
	if session == nil || session.Image == nil {
		return nil, fmt.Errorf("no image to render")
	}

	canvas := imaging.Clone(session.Image)
	for _, sh := range session.Annotations.Shapes() {
		tint(canvas, PolygonMask(sh.Points, session.Size), committedTint, 0.35)
	}
	for _, sh := range session.Proposals.SelectedShapes() {
		tint(canvas, PolygonMask(sh.Points, session.Size), proposalTint, 0.5)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// tint смешивает пиксели маски с цветом c в доле alpha.
func tint(img *image.NRGBA, mask entity.Mask, c color.NRGBA, alpha float64) {
	b := img.Bounds()
	for y := 0; y < mask.Height && y < b.Dy(); y++ {
		for x := 0; x < mask.Width && x < b.Dx(); x++ {
			if mask.Pix[y*mask.Width+x] == 0 {
				continue
			}
			i := y*img.Stride + x*4
			img.Pix[i+0] = blend(img.Pix[i+0], c.R, alpha)
			img.Pix[i+1] = blend(img.Pix[i+1], c.G, alpha)
			img.Pix[i+2] = blend(img.Pix[i+2], c.B, alpha)
			img.Pix[i+3] = 0xff
		}
	}
}

func blend(dst, src uint8, alpha float64) uint8 {
	return uint8(float64(dst)*(1-alpha) + float64(src)*alpha + 0.5)
}
