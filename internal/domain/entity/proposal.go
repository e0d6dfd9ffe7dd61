package entity

// MaxProposals сколько гипотез доступно для ручного выбора.
const MaxProposals = 4

// MaskProposal одна гипотеза модели: оценка и полигоны, полученные из маски.
type MaskProposal struct {
	Score  float64
	Shapes []*Shape
}

// ProposalSet гипотезы последнего запроса.
//
// DefaultIndex считается по всем оценкам модели, а не только по первым
// MaxProposals. Если лучшая гипотеза не попала в список, Selected равен -1
// и принимать нечего, пока пользователь не выберет слот.
type ProposalSet struct {
	Proposals    []MaskProposal
	DefaultIndex int
	Selected     int
}

// Choose выбирает гипотезу i. Индекс вне списка игнорируется.
func (p *ProposalSet) Choose(i int) bool {
	if p == nil || i < 0 || i >= len(p.Proposals) {
		return false
	}
	p.Selected = i
	return true
}

// SelectedShapes возвращает полигоны выбранной гипотезы или nil.
func (p *ProposalSet) SelectedShapes() []*Shape {
	if p == nil || p.Selected < 0 || p.Selected >= len(p.Proposals) {
		return nil
	}
	return p.Proposals[p.Selected].Shapes
}
