package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	app "sam-annotator/internal/application"
	"sam-annotator/internal/domain/entity"
)

var (
	errBoxArgs   = errors.New("укажите рамку: /box x1 y1 x2 y2")
	errPointArgs = errors.New("укажите точку: /pos x y или /neg x y")
	errLabelArgs = errors.New("укажите номер и метку: /label n метка [группа]")
)

// parseBox разбирает углы рамки "x1 y1 x2 y2".
func parseBox(args []string) (entity.Point, entity.Point, error) {
	if len(args) != 4 {
		return entity.Point{}, entity.Point{}, errBoxArgs
	}
	v, err := parseFloats(args)
	if err != nil {
		return entity.Point{}, entity.Point{}, errBoxArgs
	}
	return entity.Point{X: v[0], Y: v[1]}, entity.Point{X: v[2], Y: v[3]}, nil
}

// parsePoint разбирает точку "x y".
func parsePoint(args []string) (entity.Point, error) {
	if len(args) != 2 {
		return entity.Point{}, errPointArgs
	}
	v, err := parseFloats(args)
	if err != nil {
		return entity.Point{}, errPointArgs
	}
	return entity.Point{X: v[0], Y: v[1]}, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, fmt.Errorf("negative coordinate %v", f)
		}
		out[i] = f
	}
	return out, nil
}

// parseIndices переводит номера с 1 в индексы с 0.
func parseIndices(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("неверный номер %q", a)
		}
		out = append(out, n-1)
	}
	return out, nil
}

// parseLabel разбирает "[метка] [группа]". Метка может состоять из нескольких слов,
// группа берётся из последнего слова, если это число.
func parseLabel(args []string) (entity.LabelResult, error) {
	var r entity.LabelResult
	if len(args) == 0 {
		return r, nil
	}
	last := args[len(args)-1]
	if len(args) > 1 {
		if id, err := strconv.Atoi(last); err == nil {
			if id < 0 {
				return r, fmt.Errorf("неверная группа %d", id)
			}
			r.GroupID = entity.NewGroupID(id)
			args = args[:len(args)-1]
		}
	}
	r.Label = strings.Join(args, " ")
	return r, nil
}

// parseEditLabel разбирает "n метка [группа]".
func parseEditLabel(args []string) (int, entity.LabelResult, error) {
	if len(args) < 2 {
		return 0, entity.LabelResult{}, errLabelArgs
	}
	indices, err := parseIndices(args[:1])
	if err != nil {
		return 0, entity.LabelResult{}, err
	}
	label, err := parseLabel(args[1:])
	if err != nil {
		return 0, entity.LabelResult{}, err
	}
	return indices[0], label, nil
}

func formatOpened(session *entity.AnnotationSession) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🖼 Изображение %d×%d открыто", session.Size.Width, session.Size.Height)
	if n := len(session.Images); n > 0 {
		fmt.Fprintf(&sb, " (%d из %d)", session.Index+1, n)
	}
	sb.WriteString(".")
	if n := session.Annotations.Len(); n > 0 {
		fmt.Fprintf(&sb, " Загружено объектов: %d.", n)
	}
	sb.WriteString("\nЗадайте объект: /box x1 y1 x2 y2 или /pos x y")
	return sb.String()
}

func formatProposals(set *entity.ProposalSet) string {
	if set == nil || len(set.Proposals) == 0 {
		return "🤷 Модель не нашла объектов."
	}

	var sb strings.Builder
	sb.WriteString("🎯 Гипотезы:\n")
	for i, p := range set.Proposals {
		marker := "  "
		if i == set.Selected {
			marker = "👉"
		}
		points := 0
		for _, s := range p.Shapes {
			points += len(s.Points)
		}
		fmt.Fprintf(&sb, "%s %d. оценка %.3f, полигонов %d, точек %d\n", marker, i+1, p.Score, len(p.Shapes), points)
	}
	if set.Selected < 0 {
		sb.WriteString("\nЛучшая гипотеза вне списка. Выберите вариант: /choose n")
	} else {
		sb.WriteString("\nПринять: /accept [метка] [группа], другой вариант: /choose n")
	}
	return sb.String()
}

func formatAnnotations(set *entity.AnnotationSet) string {
	if set == nil || set.Len() == 0 {
		return "📭 Разметка пуста."
	}

	var sb strings.Builder
	sb.WriteString("📋 Объекты:\n")
	for i, s := range set.Shapes() {
		group := "—"
		if s.GroupID != nil {
			group = strconv.Itoa(*s.GroupID)
		}
		fmt.Fprintf(&sb, "%d. %s (группа %s, %s, точек %d)\n", i+1, s.Label, group, s.Type, len(s.Points))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatSimplify(reports []app.SimplifyReport) string {
	if len(reports) == 0 {
		return "🤷 Нет полигонов для упрощения."
	}

	var sb strings.Builder
	sb.WriteString("✂️ Упрощено:\n")
	for _, r := range reports {
		fmt.Fprintf(&sb, "%s: %d → %d точек, IoU %.3f\n", r.Label, r.Before, r.After, r.IoU)
	}
	return strings.TrimRight(sb.String(), "\n")
}
