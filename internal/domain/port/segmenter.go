package port

import (
	"context"
	"image"

	"sam-annotator/internal/domain/entity"
)

// Segmenter интерфейс модели интерактивной сегментации
type Segmenter interface {
	// Encode вычисляет и кэширует признаки изображения. Вызывается один раз на изображение.
	Encode(ctx context.Context, img image.Image) error

	// Predict возвращает маски-гипотезы и их оценки для подсказки по закодированному изображению
	Predict(ctx context.Context, req entity.PredictRequest) (*entity.Prediction, error)
}

// ContourFinder интерфейс извлечения контуров из бинарной маски
type ContourFinder interface {
	// FindContours возвращает все контуры маски, включая контуры дыр
	FindContours(mask entity.Mask) [][]entity.Point
}
