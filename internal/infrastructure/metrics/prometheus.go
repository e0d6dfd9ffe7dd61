package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"sam-annotator/internal/domain/port"
)

// Prometheus собирает метрики разметки в собственном реестре.
type Prometheus struct {
	registry *prometheus.Registry

	predictions        *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	masks              prometheus.Histogram
	committedShapes    prometheus.Counter
	undos              prometheus.Counter
}

// NewPrometheus регистрирует метрики. activeSessions может быть nil.
func NewPrometheus(activeSessions func() int) *Prometheus {
	m := &Prometheus{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sam_annotator_predictions_total",
				Help: "Total number of segmentation requests",
			},
			[]string{"status"},
		),
		predictionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sam_annotator_prediction_duration_seconds",
				Help:    "Duration of segmentation requests including image encoding",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		masks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sam_annotator_prediction_masks",
				Help:    "Number of mask hypotheses returned per request",
				Buckets: prometheus.LinearBuckets(1, 1, 6),
			},
		),
		committedShapes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sam_annotator_committed_shapes_total",
				Help: "Total number of shapes committed to annotations",
			},
		),
		undos: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sam_annotator_undo_total",
				Help: "Total number of undo operations",
			},
		),
	}

	m.registry.MustRegister(
		m.predictions,
		m.predictionDuration,
		m.masks,
		m.committedShapes,
		m.undos,
		collectors.NewGoCollector(),
	)
	if activeSessions != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "sam_annotator_active_sessions",
				Help: "Number of open annotation sessions",
			},
			func() float64 { return float64(activeSessions()) },
		))
	}
	return m
}

// Registry реестр для HTTP-обработчика.
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePrediction учитывает запрос к модели.
func (m *Prometheus) ObservePrediction(d time.Duration, masks int, err error) {
	if err != nil {
		m.predictions.WithLabelValues("error").Inc()
		return
	}
	m.predictions.WithLabelValues("ok").Inc()
	m.predictionDuration.Observe(d.Seconds())
	m.masks.Observe(float64(masks))
}

// ObserveCommit учитывает принятые фигуры.
func (m *Prometheus) ObserveCommit(shapes int) {
	m.committedShapes.Add(float64(shapes))
}

// ObserveUndo учитывает отмену.
func (m *Prometheus) ObserveUndo() {
	m.undos.Inc()
}

// Проверка реализации интерфейса
var _ port.Metrics = (*Prometheus)(nil)
