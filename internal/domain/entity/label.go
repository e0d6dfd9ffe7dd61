package entity

// LabelResult результат диалога метки. GroupID == nil — взять следующий свободный.
type LabelResult struct {
	Label       string
	Flags       map[string]bool
	GroupID     *int
	Description string
}

// LabelOrDefault возвращает метку или DefaultLabel, если метка пустая.
func (r *LabelResult) LabelOrDefault() string {
	if r == nil || r.Label == "" {
		return DefaultLabel
	}
	return r.Label
}
