package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
	"sam-annotator/internal/logger"
)

// SegmentationService ведёт подсказки сеанса и запросы к модели сегментации.
//
// Модель кодирует изображение один раз: пока ключ закодированного изображения
// совпадает с ID сеанса, повторные подсказки идут сразу в Predict.
type SegmentationService struct {
	segmenter   port.Segmenter
	transformer *CoordinateTransformer
	ranker      *ProposalRanker
	metrics     port.Metrics

	mu         sync.Mutex
	encodedKey string
}

// NewSegmentationService создаёт сервис. segmenter может быть nil: тогда Predict ничего не делает.
func NewSegmentationService(segmenter port.Segmenter, transformer *CoordinateTransformer, ranker *ProposalRanker, metrics port.Metrics) *SegmentationService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SegmentationService{
		segmenter:   segmenter,
		transformer: transformer,
		ranker:      ranker,
		metrics:     metrics,
	}
}

// SetBox заменяет подсказку рамкой. Клики сбрасываются.
func (s *SegmentationService) SetBox(session *entity.AnnotationSession, corner1, corner2 entity.Point) {
	session.Prompt = entity.NewBoxPrompt(corner1, corner2)
	session.Proposals = nil
}

// AddClick добавляет положительный или отрицательный клик. Активная рамка сбрасывается.
func (s *SegmentationService) AddClick(session *entity.AnnotationSession, pt entity.Point, positive bool) {
	session.Prompt = session.Prompt.WithClick(pt, positive)
	session.Proposals = nil
}

// ClearPrompt сбрасывает подсказку и гипотезы без изменения разметки.
func (s *SegmentationService) ClearPrompt(session *entity.AnnotationSession) {
	session.ResetPrompt()
}

// Predict отправляет подсказку в модель и сохраняет гипотезы в сеансе.
// Возвращает false без ошибки, если модели, изображения или подсказки нет.
func (s *SegmentationService) Predict(ctx context.Context, session *entity.AnnotationSession) (bool, error) {
	if s.segmenter == nil || session == nil || session.Image == nil || session.Prompt.Empty() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	img, req := s.transformer.ToModelSpace(session.Image, session.Prompt.Request())

	if s.encodedKey != session.ID() {
		if err := s.segmenter.Encode(ctx, img); err != nil {
			s.encodedKey = ""
			s.metrics.ObservePrediction(time.Since(started), 0, err)
			return false, fmt.Errorf("encode image: %w", err)
		}
		s.encodedKey = session.ID()
		logger.Logger.Debug("image encoded",
			zap.String("image", session.ID()),
			zap.Duration("elapsed", time.Since(started)),
		)
	}

	pred, err := s.segmenter.Predict(ctx, req)
	if err != nil {
		s.metrics.ObservePrediction(time.Since(started), 0, err)
		return false, fmt.Errorf("predict: %w", err)
	}

	masks := s.transformer.FromModelSpace(pred.Masks, session.Size)
	session.Proposals = s.ranker.Rank(masks, pred.Scores)

	s.metrics.ObservePrediction(time.Since(started), len(pred.Masks), nil)
	logger.Logger.Debug("prediction ready",
		zap.String("image", session.ID()),
		zap.Int("masks", len(pred.Masks)),
		zap.Int("selected", session.Proposals.Selected),
	)
	return true, nil
}

// Choose выбирает гипотезу i. Индекс вне списка игнорируется.
func (s *SegmentationService) Choose(session *entity.AnnotationSession, i int) bool {
	return session.Proposals.Choose(i)
}

// Invalidate забывает закодированное изображение. Вызывается при смене изображения.
func (s *SegmentationService) Invalidate() {
	s.mu.Lock()
	s.encodedKey = ""
	s.mu.Unlock()
}

// nopMetrics метрики по умолчанию, ничего не собирают
type nopMetrics struct{}

func (nopMetrics) ObservePrediction(time.Duration, int, error) {}
func (nopMetrics) ObserveCommit(int)                           {}
func (nopMetrics) ObserveUndo()                                {}
