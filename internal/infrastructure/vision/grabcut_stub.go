//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// GrabCutSegmenter заглушка для сборки без OpenCV.
type GrabCutSegmenter struct {
	Iterations  int
	ClickRadius int
}

// NewGrabCutSegmenter создаёт сегментатор-заглушку (без OpenCV).
func NewGrabCutSegmenter(iterations, clickRadius int) *GrabCutSegmenter {
	return &GrabCutSegmenter{
		Iterations:  iterations,
		ClickRadius: clickRadius,
	}
}

// Encode возвращает ошибку, если сборка без тега gocv.
func (s *GrabCutSegmenter) Encode(ctx context.Context, img image.Image) error {
	_ = ctx
	_ = img
	return errors.New("gocv build tag is not enabled")
}

// Predict возвращает ошибку, если сборка без тега gocv.
func (s *GrabCutSegmenter) Predict(ctx context.Context, req entity.PredictRequest) (*entity.Prediction, error) {
	_ = ctx
	_ = req
	return nil, errors.New("gocv build tag is not enabled")
}

// Close ничего не делает.
func (s *GrabCutSegmenter) Close() error {
	return nil
}

// Проверка реализации интерфейса
var _ port.Segmenter = (*GrabCutSegmenter)(nil)
