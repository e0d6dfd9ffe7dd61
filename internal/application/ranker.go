package app

import "sam-annotator/internal/domain/entity"

// ProposalRanker собирает гипотезы модели в ProposalSet.
type ProposalRanker struct {
	converter *PolygonConverter
}

// NewProposalRanker создаёт ранжировщик.
func NewProposalRanker(converter *PolygonConverter) *ProposalRanker {
	return &ProposalRanker{converter: converter}
}

// Rank конвертирует первые entity.MaxProposals масок в гипотезы и выбирает лучшую по оценке.
// Лучшая ищется по всем оценкам; если она за пределами списка, ничего не выбрано.
func (r *ProposalRanker) Rank(masks []entity.Mask, scores []float64) *entity.ProposalSet {
	n := min(len(masks), entity.MaxProposals)
	set := &entity.ProposalSet{
		Proposals: make([]entity.MaskProposal, 0, n),
	}
	for i := 0; i < n; i++ {
		p := entity.MaskProposal{Shapes: r.converter.Convert(masks[i])}
		if i < len(scores) {
			p.Score = scores[i]
		}
		set.Proposals = append(set.Proposals, p)
	}

	set.DefaultIndex = argmax(scores)
	set.Selected = -1
	if set.DefaultIndex >= 0 && set.DefaultIndex < len(set.Proposals) {
		set.Selected = set.DefaultIndex
	}
	return set
}

// argmax индекс первого максимума, -1 для пустого списка.
func argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
