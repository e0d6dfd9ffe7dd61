package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
	"sam-annotator/internal/logger"
)

// ErrNoImages в каталоге нет изображений.
var ErrNoImages = errors.New("no images found")

// NavigationService открывает изображения, загружает и сохраняет их разметку.
type NavigationService struct {
	images       port.ImageSource
	repo         port.AnnotationRepository
	categories   *CategoryList
	segmentation *SegmentationService
}

// NewNavigationService создаёт сервис навигации. images может быть nil, если каталоги не используются.
func NewNavigationService(images port.ImageSource, repo port.AnnotationRepository, categories *CategoryList, segmentation *SegmentationService) *NavigationService {
	return &NavigationService{
		images:       images,
		repo:         repo,
		categories:   categories,
		segmentation: segmentation,
	}
}

// OpenDirectory открывает первое изображение каталога.
func (s *NavigationService) OpenDirectory(ctx context.Context, dir string) (*entity.AnnotationSession, error) {
	if s.images == nil {
		return nil, errors.New("image source is not configured")
	}
	images, err := s.images.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImages)
	}
	return s.openAt(ctx, images, 0)
}

// Open открывает одиночное изображение из байтов и подгружает его разметку.
func (s *NavigationService) Open(ctx context.Context, path string, data []byte) (*entity.AnnotationSession, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	session := entity.NewAnnotationSession(path, data, img)
	if err := s.loadAnnotations(ctx, session); err != nil {
		return nil, err
	}
	if s.segmentation != nil {
		s.segmentation.Invalidate()
	}

	logger.Logger.Info("image opened",
		zap.String("image", path),
		zap.Int("width", session.Size.Width),
		zap.Int("height", session.Size.Height),
		zap.Int("shapes", session.Annotations.Len()),
	)
	return session, nil
}

// Next сохраняет изменённую разметку и открывает следующее изображение.
// На последнем изображении возвращает текущий сеанс.
func (s *NavigationService) Next(ctx context.Context, session *entity.AnnotationSession) (*entity.AnnotationSession, error) {
	if !session.HasNext() {
		return session, nil
	}
	return s.move(ctx, session, session.Index+1)
}

// Previous сохраняет изменённую разметку и открывает предыдущее изображение.
func (s *NavigationService) Previous(ctx context.Context, session *entity.AnnotationSession) (*entity.AnnotationSession, error) {
	if !session.HasPrevious() {
		return session, nil
	}
	return s.move(ctx, session, session.Index-1)
}

// Save записывает разметку сеанса и снимает признак изменений.
func (s *NavigationService) Save(ctx context.Context, session *entity.AnnotationSession) error {
	if err := s.repo.Save(ctx, entity.NewAnnotationDocument(session)); err != nil {
		return fmt.Errorf("save annotations: %w", err)
	}
	session.Dirty = false
	logger.Logger.Info("annotations saved",
		zap.String("image", session.ImagePath),
		zap.Int("shapes", session.Annotations.Len()),
	)
	return nil
}

func (s *NavigationService) move(ctx context.Context, session *entity.AnnotationSession, index int) (*entity.AnnotationSession, error) {
	if session.Dirty {
		if err := s.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.openAt(ctx, session.Images, index)
}

func (s *NavigationService) openAt(ctx context.Context, images []string, index int) (*entity.AnnotationSession, error) {
	path := images[index]
	data, err := s.images.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	session, err := s.Open(ctx, path, data)
	if err != nil {
		return nil, err
	}
	session.Images = images
	session.Index = index
	return session, nil
}

// loadAnnotations подгружает сохранённую разметку: числовые метки переводятся через
// список категорий, фигуры без точек пропускаются.
func (s *NavigationService) loadAnnotations(ctx context.Context, session *entity.AnnotationSession) error {
	doc, err := s.repo.Load(ctx, session.ImagePath)
	if errors.Is(err, entity.ErrAnnotationNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load annotations: %w", err)
	}

	for _, sh := range doc.Shapes {
		if len(sh.Points) == 0 {
			continue
		}
		sh.Label = s.categories.Resolve(sh.Label)
		session.Annotations.Add(sh)
	}
	return nil
}
