package app

import (
	"go.uber.org/zap"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
	"sam-annotator/internal/logger"
)

// SimplifyReport итог прореживания одной фигуры.
type SimplifyReport struct {
	Label  string
	Before int
	After  int
	IoU    float64
}

// AnnotationService изменяет разметку сеанса. Каждое изменение сначала кладёт
// в историю снимок состояния до него.
type AnnotationService struct {
	labeling bool
	metrics  port.Metrics
}

// NewAnnotationService создаёт сервис. labeling=false — все объекты получают
// метку по умолчанию и следующий свободный идентификатор группы.
func NewAnnotationService(labeling bool, metrics port.Metrics) *AnnotationService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &AnnotationService{labeling: labeling, metrics: metrics}
}

// Labeling включён ли запрос метки при принятии объекта.
func (s *AnnotationService) Labeling() bool {
	return s.labeling
}

// Accept добавляет в разметку полигоны выбранной гипотезы и сбрасывает подсказку.
// Без выбранной гипотезы или без точек ничего не меняется.
func (s *AnnotationService) Accept(session *entity.AnnotationSession, label *entity.LabelResult) []*entity.Shape {
	shapes := session.Proposals.SelectedShapes()
	if !hasPoints(shapes) {
		return nil
	}

	name := entity.DefaultLabel
	var groupID *int
	if s.labeling && label != nil {
		name = label.LabelOrDefault()
		groupID = label.GroupID
	}

	s.push(session)
	committed := session.Annotations.Commit(shapes, name, groupID)
	if s.labeling && label != nil {
		for _, c := range committed {
			if label.Flags != nil {
				c.Flags = copyFlags(label.Flags)
			}
			c.Description = label.Description
		}
	}

	session.ResetPrompt()
	session.Dirty = true
	s.metrics.ObserveCommit(len(committed))

	logger.Logger.Info("object accepted",
		zap.String("image", session.ID()),
		zap.String("label", name),
		zap.Int("shapes", len(committed)),
		zap.Int("group_id", *committed[0].GroupID),
	)
	return committed
}

// Remove удаляет фигуры по индексам разметки. Неверные индексы игнорируются.
func (s *AnnotationService) Remove(session *entity.AnnotationSession, indices ...int) int {
	targets := shapesAt(session.Annotations, indices)
	if len(targets) == 0 {
		return 0
	}
	s.push(session)
	n := session.Annotations.Remove(targets...)
	session.Dirty = true
	return n
}

// Duplicate добавляет сдвинутые копии фигур по индексам.
func (s *AnnotationService) Duplicate(session *entity.AnnotationSession, offset entity.Point, indices ...int) []*entity.Shape {
	targets := shapesAt(session.Annotations, indices)
	if len(targets) == 0 {
		return nil
	}
	s.push(session)
	added := session.Annotations.Duplicate(targets, offset)
	session.Dirty = true
	return added
}

// Simplify прореживает полигоны по индексам, без индексов — все полигоны.
// Упрощённая фигура переносится в конец разметки.
func (s *AnnotationService) Simplify(session *entity.AnnotationSession, indices ...int) []SimplifyReport {
	var targets []*entity.Shape
	if len(indices) == 0 {
		targets = session.Annotations.Shapes()
	} else {
		targets = shapesAt(session.Annotations, indices)
	}

	var polygons []*entity.Shape
	for _, t := range targets {
		if t.Type == entity.ShapePolygon && len(t.Points) > 0 {
			polygons = append(polygons, t)
		}
	}
	if len(polygons) == 0 {
		return nil
	}

	s.push(session)
	reports := make([]SimplifyReport, 0, len(polygons))
	for _, old := range polygons {
		next := old.Clone()
		next.Points = Simplify(old.Points)

		session.Annotations.Remove(old)
		session.Annotations.Add(next)

		reports = append(reports, SimplifyReport{
			Label:  old.Label,
			Before: len(old.Points),
			After:  len(next.Points),
			IoU:    PolygonIoU(old.Points, next.Points, session.Size),
		})
	}
	session.Dirty = true
	return reports
}

// EditLabel меняет метку, флаги и описание фигуры. GroupID == nil оставляет группу как есть.
func (s *AnnotationService) EditLabel(session *entity.AnnotationSession, index int, label entity.LabelResult) bool {
	old := session.Annotations.At(index)
	if old == nil {
		return false
	}

	next := old.Clone()
	next.Label = label.LabelOrDefault()
	if label.Flags != nil {
		next.Flags = copyFlags(label.Flags)
	}
	if label.GroupID != nil {
		next.GroupID = entity.NewGroupID(*label.GroupID)
	}
	next.Description = label.Description

	s.push(session)
	session.Annotations.Replace(old, next)
	session.Dirty = true
	return true
}

// Undo возвращает разметку к состоянию до последнего изменения.
func (s *AnnotationService) Undo(session *entity.AnnotationSession) bool {
	snap, ok := session.History.Pop()
	if !ok {
		return false
	}
	session.Annotations.Restore(snap)
	session.Dirty = true
	s.metrics.ObserveUndo()
	return true
}

func (s *AnnotationService) push(session *entity.AnnotationSession) {
	session.History.Push(session.Annotations.Snapshot())
}

func hasPoints(shapes []*entity.Shape) bool {
	for _, sh := range shapes {
		if sh != nil && len(sh.Points) > 0 {
			return true
		}
	}
	return false
}

func shapesAt(set *entity.AnnotationSet, indices []int) []*entity.Shape {
	seen := make(map[int]bool, len(indices))
	var out []*entity.Shape
	for _, i := range indices {
		if seen[i] {
			continue
		}
		seen[i] = true
		if sh := set.At(i); sh != nil {
			out = append(out, sh)
		}
	}
	return out
}

func copyFlags(flags map[string]bool) map[string]bool {
	out := make(map[string]bool, len(flags))
	for k, v := range flags {
		out[k] = v
	}
	return out
}
