package entity

// HistoryCapacity глубина истории отмены.
const HistoryCapacity = 10

// EditHistory кольцевой буфер снимков для отмены. Повтора (redo) нет.
type EditHistory struct {
	ring  [HistoryCapacity]Snapshot
	start int
	size  int
}

// NewEditHistory создаёт пустую историю.
func NewEditHistory() *EditHistory {
	return &EditHistory{}
}

// Len число сохранённых снимков.
func (h *EditHistory) Len() int {
	return h.size
}

// Push сохраняет снимок; при переполнении вытесняется самый старый.
func (h *EditHistory) Push(s Snapshot) {
	if h.size < HistoryCapacity {
		h.ring[(h.start+h.size)%HistoryCapacity] = s
		h.size++
		return
	}
	h.ring[h.start] = s
	h.start = (h.start + 1) % HistoryCapacity
}

// Pop извлекает последний снимок. Для пустой истории возвращает false.
func (h *EditHistory) Pop() (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	i := (h.start + h.size - 1) % HistoryCapacity
	s := h.ring[i]
	h.ring[i] = Snapshot{}
	h.size--
	return s, true
}

// Clear очищает историю.
func (h *EditHistory) Clear() {
	*h = EditHistory{}
}
