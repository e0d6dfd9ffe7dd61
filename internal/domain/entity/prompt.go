package entity

// PromptKind активный вариант подсказки.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptBox
	PromptClicks
)

// Метки точек в запросе к модели.
const (
	ClickNegative = 0
	ClickPositive = 1
)

// PromptState подсказка текущего сеанса: нет подсказки, рамка или набор кликов.
// Одновременно активен ровно один вариант.
type PromptState struct {
	Kind     PromptKind
	Box      Box
	Positive []Point
	Negative []Point
}

// NewBoxPrompt создаёт подсказку-рамку по двум углам.
func NewBoxPrompt(corner1, corner2 Point) PromptState {
	return PromptState{Kind: PromptBox, Box: Box{Min: corner1, Max: corner2}}
}

// WithClick добавляет клик. Если была активна рамка, она сбрасывается.
func (p PromptState) WithClick(pt Point, positive bool) PromptState {
	next := PromptState{Kind: PromptClicks}
	if p.Kind == PromptClicks {
		next.Positive = append([]Point(nil), p.Positive...)
		next.Negative = append([]Point(nil), p.Negative...)
	}
	if positive {
		next.Positive = append(next.Positive, pt)
	} else {
		next.Negative = append(next.Negative, pt)
	}
	return next
}

// Empty сообщает, что по подсказке нечего спрашивать у модели.
func (p PromptState) Empty() bool {
	switch p.Kind {
	case PromptBox:
		return false
	case PromptClicks:
		return len(p.Positive) == 0 && len(p.Negative) == 0
	default:
		return true
	}
}

// Request строит запрос к модели: сначала положительные клики, затем отрицательные.
func (p PromptState) Request() PredictRequest {
	switch p.Kind {
	case PromptBox:
		box := p.Box.Normalized()
		return PredictRequest{Box: &box}
	case PromptClicks:
		req := PredictRequest{
			Points: make([]Point, 0, len(p.Positive)+len(p.Negative)),
			Labels: make([]int, 0, len(p.Positive)+len(p.Negative)),
		}
		for _, pt := range p.Positive {
			req.Points = append(req.Points, pt)
			req.Labels = append(req.Labels, ClickPositive)
		}
		for _, pt := range p.Negative {
			req.Points = append(req.Points, pt)
			req.Labels = append(req.Labels, ClickNegative)
		}
		return req
	default:
		return PredictRequest{}
	}
}

// PredictRequest запрос к модели сегментации в координатах модели.
type PredictRequest struct {
	Points []Point
	Labels []int
	Box    *Box
}

// Prediction ответ модели: N масок и N оценок уверенности.
type Prediction struct {
	Masks  []Mask
	Scores []float64
}
