//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"gocv.io/x/gocv"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// Значения маски GrabCut.
const (
	gcBackground         = 0
	gcForeground         = 1
	gcProbablyBackground = 2
	gcProbablyForeground = 3
)

// GrabCutSegmenter локальная сегментация по подсказке через OpenCV GrabCut.
// Возвращает одну гипотезу с оценкой 1.
type GrabCutSegmenter struct {
	Iterations  int
	ClickRadius int

	mu  sync.Mutex
	img gocv.Mat
	set bool
}

// NewGrabCutSegmenter создаёт сегментатор GrabCut.
func NewGrabCutSegmenter(iterations, clickRadius int) *GrabCutSegmenter {
	return &GrabCutSegmenter{
		Iterations:  iterations,
		ClickRadius: clickRadius,
	}
}

// Encode запоминает изображение для последующих подсказок.
func (s *GrabCutSegmenter) Encode(ctx context.Context, img image.Image) error {
	_ = ctx
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return errors.New("empty image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		s.img.Close()
	}
	s.img = mat
	s.set = true
	return nil
}

// Predict запускает GrabCut с рамкой или с кликами.
func (s *GrabCutSegmenter) Predict(ctx context.Context, req entity.PredictRequest) (*entity.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return nil, errors.New("image is not encoded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, cols := s.img.Rows(), s.img.Cols()
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(gcProbablyBackground, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
	defer mask.Close()
	bgd := gocv.NewMat()
	defer bgd.Close()
	fgd := gocv.NewMat()
	defer fgd.Close()

	switch {
	case req.Box != nil:
		box := req.Box.Normalized()
		rect := image.Rect(
			int(math.Floor(box.Min.X)), int(math.Floor(box.Min.Y)),
			int(math.Ceil(box.Max.X)), int(math.Ceil(box.Max.Y)),
		).Intersect(image.Rect(0, 0, cols, rows))
		if rect.Empty() {
			return &entity.Prediction{Masks: []entity.Mask{entity.NewMask(cols, rows)}, Scores: []float64{1}}, nil
		}
		gocv.GrabCut(s.img, &mask, rect, &bgd, &fgd, s.Iterations, gocv.GCInitWithRect)
	case len(req.Points) > 0:
		for i, p := range req.Points {
			v := uint8(gcBackground)
			if i < len(req.Labels) && req.Labels[i] == entity.ClickPositive {
				v = gcForeground
			}
			center := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
			gocv.Circle(&mask, center, s.ClickRadius, color.RGBA{R: v, G: v, B: v}, -1)
		}
		gocv.GrabCut(s.img, &mask, image.Rectangle{}, &bgd, &fgd, s.Iterations, gocv.GCInitWithMask)
	default:
		return nil, errors.New("empty prompt")
	}

	out := entity.NewMask(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			switch mask.GetUCharAt(y, x) {
			case gcForeground, gcProbablyForeground:
				out.Pix[y*cols+x] = 1
			}
		}
	}
	return &entity.Prediction{Masks: []entity.Mask{out}, Scores: []float64{1}}, nil
}

// Close освобождает изображение.
func (s *GrabCutSegmenter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		s.img.Close()
		s.set = false
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.Segmenter = (*GrabCutSegmenter)(nil)
