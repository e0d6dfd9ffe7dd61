package storage

import (
	"context"
	"sync"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// MemoryRepository in-memory хранилище разметки. Документы хранятся в закодированном
// виде, поэтому чтение всегда возвращает независимую копию.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryRepository создаёт пустое хранилище.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs: make(map[string][]byte),
	}
}

// Load возвращает разметку изображения.
func (r *MemoryRepository) Load(ctx context.Context, imagePath string) (*entity.AnnotationDocument, error) {
	r.mu.RLock()
	data, ok := r.docs[AnnotationFileName(imagePath)]
	r.mu.RUnlock()

	if !ok {
		return nil, entity.ErrAnnotationNotFound
	}
	return DecodeAnnotation(data)
}

// Save сохраняет разметку изображения.
func (r *MemoryRepository) Save(ctx context.Context, doc *entity.AnnotationDocument) error {
	data, err := EncodeAnnotation(doc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.docs[AnnotationFileName(doc.ImagePath)] = data
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.AnnotationRepository = (*MemoryRepository)(nil)
