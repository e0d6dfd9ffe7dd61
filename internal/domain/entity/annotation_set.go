package entity

import "slices"

// AnnotationSet упорядоченный набор принятых фигур текущего изображения.
type AnnotationSet struct {
	shapes []*Shape
}

// NewAnnotationSet создаёт набор из готовых фигур. Фигуры без точек отбрасываются.
func NewAnnotationSet(shapes ...*Shape) *AnnotationSet {
	a := &AnnotationSet{}
	a.Add(shapes...)
	return a
}

// Len количество фигур.
func (a *AnnotationSet) Len() int {
	return len(a.shapes)
}

// At возвращает фигуру по индексу или nil.
func (a *AnnotationSet) At(i int) *Shape {
	if i < 0 || i >= len(a.shapes) {
		return nil
	}
	return a.shapes[i]
}

// Shapes возвращает копию списка фигур.
func (a *AnnotationSet) Shapes() []*Shape {
	out := make([]*Shape, len(a.shapes))
	copy(out, a.shapes)
	return out
}

// Contains сообщает, лежит ли в наборе именно эта фигура.
func (a *AnnotationSet) Contains(s *Shape) bool {
	return a.indexOf(s) >= 0
}

// NextGroupID = 1 + максимальный идентификатор группы, 0 для пустого набора.
func (a *AnnotationSet) NextGroupID() int {
	maxID := -1
	for _, s := range a.shapes {
		if s.GroupID != nil && *s.GroupID > maxID {
			maxID = *s.GroupID
		}
	}
	return maxID + 1
}

// Add добавляет фигуры как есть. Фигуры без точек пропускаются.
func (a *AnnotationSet) Add(shapes ...*Shape) {
	for _, s := range shapes {
		if s == nil || len(s.Points) == 0 {
			continue
		}
		a.shapes = append(a.shapes, s)
	}
}

// Commit добавляет копии фигур с общей меткой и группой и возвращает добавленные.
// Пустая метка заменяется на DefaultLabel, nil-группа — на NextGroupID.
func (a *AnnotationSet) Commit(shapes []*Shape, label string, groupID *int) []*Shape {
	if len(shapes) == 0 {
		return nil
	}
	if label == "" {
		label = DefaultLabel
	}
	id := a.NextGroupID()
	if groupID != nil {
		id = *groupID
	}

	committed := make([]*Shape, 0, len(shapes))
	for _, s := range shapes {
		if s == nil || len(s.Points) == 0 {
			continue
		}
		c := s.Clone()
		c.Label = label
		c.GroupID = NewGroupID(id)
		a.shapes = append(a.shapes, c)
		committed = append(committed, c)
	}
	return committed
}

// Remove удаляет фигуры по указателю и возвращает число удалённых.
func (a *AnnotationSet) Remove(shapes ...*Shape) int {
	removed := 0
	for _, s := range shapes {
		i := a.indexOf(s)
		if i < 0 {
			continue
		}
		a.shapes = slices.Delete(a.shapes, i, i+1)
		removed++
	}
	return removed
}

// Replace ставит next на место old.
func (a *AnnotationSet) Replace(old, next *Shape) bool {
	i := a.indexOf(old)
	if i < 0 || next == nil {
		return false
	}
	a.shapes[i] = next
	return true
}

// Duplicate добавляет сдвинутые на offset копии фигур и возвращает их.
//
// Идентификатор группы, уже занятый в наборе, заменяется новым: один новый
// идентификатор на каждую исходную группу, чтобы части объекта остались вместе.
// Свободный идентификатор сохраняется, фигуры без группы остаются без группы.
func (a *AnnotationSet) Duplicate(shapes []*Shape, offset Point) []*Shape {
	used := make(map[int]bool)
	for _, s := range a.shapes {
		if s.GroupID != nil {
			used[*s.GroupID] = true
		}
	}
	next := a.NextGroupID()
	remap := make(map[int]int)

	added := make([]*Shape, 0, len(shapes))
	for _, s := range shapes {
		if s == nil || len(s.Points) == 0 {
			continue
		}
		c := s.Clone()
		c.Translate(offset)
		if c.GroupID != nil && used[*c.GroupID] {
			id, ok := remap[*c.GroupID]
			if !ok {
				id = next
				next++
				remap[*c.GroupID] = id
			}
			c.GroupID = NewGroupID(id)
		}
		added = append(added, c)
	}
	a.shapes = append(a.shapes, added...)
	return added
}

// Snapshot фиксирует текущее состояние набора.
func (a *AnnotationSet) Snapshot() Snapshot {
	return Snapshot{shapes: a.Shapes()}
}

// Restore возвращает набор к снимку.
func (a *AnnotationSet) Restore(s Snapshot) {
	a.shapes = s.Shapes()
}

func (a *AnnotationSet) indexOf(s *Shape) int {
	for i, v := range a.shapes {
		if v == s {
			return i
		}
	}
	return -1
}

// Snapshot неизменяемый снимок AnnotationSet.
type Snapshot struct {
	shapes []*Shape
}

// Len количество фигур в снимке.
func (s Snapshot) Len() int {
	return len(s.shapes)
}

// Shapes возвращает копию списка фигур снимка.
func (s Snapshot) Shapes() []*Shape {
	out := make([]*Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}
