package port

import (
	"context"

	"sam-annotator/internal/domain/entity"
)

// AnnotationRepository интерфейс хранилища файлов разметки
type AnnotationRepository interface {
	// Load возвращает разметку изображения или entity.ErrAnnotationNotFound
	Load(ctx context.Context, imagePath string) (*entity.AnnotationDocument, error)

	// Save сохраняет разметку изображения
	Save(ctx context.Context, doc *entity.AnnotationDocument) error
}

// ImageSource интерфейс источника изображений для навигации
type ImageSource interface {
	// List возвращает упорядоченный список изображений каталога
	List(ctx context.Context, dir string) ([]string, error)

	// Read возвращает байты изображения
	Read(ctx context.Context, path string) ([]byte, error)
}
