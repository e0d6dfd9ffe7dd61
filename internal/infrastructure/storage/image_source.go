package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sam-annotator/internal/domain/port"
)

// imagePatterns расширения изображений, которые видит навигация по каталогу
var imagePatterns = []string{"*.jpg", "*.png"}

// DirImageSource источник изображений из локального каталога.
type DirImageSource struct{}

// NewDirImageSource создаёт источник изображений каталога.
func NewDirImageSource() *DirImageSource {
	return &DirImageSource{}
}

// List возвращает *.jpg и *.png каталога в лексикографическом порядке.
func (s *DirImageSource) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var images []string
	for _, pattern := range imagePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("list images: %w", err)
		}
		images = append(images, matches...)
	}
	sort.Strings(images)
	return images, nil
}

// Read читает файл изображения.
func (s *DirImageSource) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Проверка реализации интерфейса
var _ port.ImageSource = (*DirImageSource)(nil)
