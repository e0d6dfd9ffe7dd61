package port

import "time"

// Metrics интерфейс сбора метрик ядра разметки
type Metrics interface {
	ObservePrediction(d time.Duration, masks int, err error)
	ObserveCommit(shapes int)
	ObserveUndo()
}
