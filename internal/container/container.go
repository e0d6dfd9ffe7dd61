package container

import (
	"fmt"

	"go.uber.org/zap"

	"sam-annotator/config"
	app "sam-annotator/internal/application"
	"sam-annotator/internal/domain/port"
	"sam-annotator/internal/infrastructure/metrics"
	"sam-annotator/internal/infrastructure/sam"
	"sam-annotator/internal/infrastructure/storage"
	"sam-annotator/internal/infrastructure/vision"
	"sam-annotator/internal/logger"
)

type Container struct {
	UserService         *app.UserService
	SegmentationService *app.SegmentationService
	AnnotationService   *app.AnnotationService
	NavigationService   *app.NavigationService
	Categories          *app.CategoryList
}

// New собирает сервисы приложения из готовых зависимостей.
func New(cfg *config.Config, userRepo port.UserRepository, segmenter port.Segmenter, annotations port.AnnotationRepository, images port.ImageSource, m port.Metrics) *Container {
	categories := app.NewCategoryList()
	if cfg.Labels.CategoryFile != "" {
		if err := categories.LoadFile(cfg.Labels.CategoryFile, cfg.Labels.SortCategories); err != nil {
			logger.Logger.Warn("category list is not loaded", zap.String("file", cfg.Labels.CategoryFile), zap.Error(err))
		}
	}

	transformer := app.NewCoordinateTransformer(cfg.Model.KeepInputSize, cfg.Model.MaxSize)
	ranker := app.NewProposalRanker(app.NewPolygonConverter(vision.NewContourFinder()))
	segmentation := app.NewSegmentationService(segmenter, transformer, ranker, m)

	return &Container{
		UserService:         app.NewUserService(userRepo),
		SegmentationService: segmentation,
		AnnotationService:   app.NewAnnotationService(cfg.Labels.ClassOn, m),
		NavigationService:   app.NewNavigationService(images, annotations, categories, segmentation),
		Categories:          categories,
	}
}

// NewSegmenter создаёт модель сегментации по настройкам.
func NewSegmenter(cfg *config.Config) (port.Segmenter, error) {
	switch cfg.Segmenter.Backend {
	case "sam":
		return sam.NewClient(cfg.Segmenter.URL, cfg.Model.Type, cfg.Segmenter.Timeout), nil
	case "grabcut":
		return vision.NewGrabCutSegmenter(cfg.Segmenter.GrabCutIterations, cfg.Segmenter.ClickRadius), nil
	default:
		return nil, fmt.Errorf("unknown segmenter backend %q", cfg.Segmenter.Backend)
	}
}

// NewAnnotationRepository создаёт хранилище разметки по настройкам.
func NewAnnotationRepository(cfg *config.Config) (port.AnnotationRepository, error) {
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileRepository(cfg.Storage.OutputDir), nil
	case "redis":
		return storage.NewRedisRepository(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			storage.WithTTL(cfg.Redis.TTL),
		), nil
	case "memory":
		return storage.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewMetrics создаёт сборщик метрик с числом открытых сеансов.
func NewMetrics(users *storage.MemoryUserRepository) *metrics.Prometheus {
	return metrics.NewPrometheus(users.ActiveSessions)
}
