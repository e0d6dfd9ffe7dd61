package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// FileRepository хранит разметку по одному JSON-файлу на изображение в каталоге outputDir.
type FileRepository struct {
	outputDir string
}

// NewFileRepository создаёт файловое хранилище разметки.
func NewFileRepository(outputDir string) *FileRepository {
	return &FileRepository{outputDir: outputDir}
}

// Path полный путь файла разметки изображения.
func (r *FileRepository) Path(imagePath string) string {
	return filepath.Join(r.outputDir, AnnotationFileName(imagePath))
}

// Load читает разметку изображения.
func (r *FileRepository) Load(ctx context.Context, imagePath string) (*entity.AnnotationDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadAnnotationFile(r.Path(imagePath))
}

// Save записывает разметку изображения.
func (r *FileRepository) Save(ctx context.Context, doc *entity.AnnotationDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteAnnotationFile(r.Path(doc.ImagePath), doc)
}

// Files возвращает отсортированный список файлов разметки каталога.
func (r *FileRepository) Files() ([]string, error) {
	return ListAnnotationFiles(r.outputDir)
}

// ListAnnotationFiles возвращает отсортированный список *.json в каталоге.
func ListAnnotationFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("annotation dir: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*"+AnnotationSuffix))
	if err != nil {
		return nil, fmt.Errorf("list annotation files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Проверка реализации интерфейса
var _ port.AnnotationRepository = (*FileRepository)(nil)
