package entity

// ShapeType тип фигуры в файле разметки
type ShapeType string

const (
	ShapePolygon   ShapeType = "polygon"
	ShapePoint     ShapeType = "point"
	ShapeRectangle ShapeType = "rectangle"
)

// DefaultLabel метка, которую получает объект, если пользователь её не задал.
const DefaultLabel = "Object"

// Shape одна фигура разметки.
//
// После добавления в AnnotationSet фигура не меняется на месте: любое
// редактирование заменяет указатель на изменённую копию, поэтому снимки
// истории могут разделять одни и те же *Shape.
type Shape struct {
	Label       string
	Type        ShapeType
	GroupID     *int
	Points      []Point
	Flags       map[string]bool
	Description string
	OtherData   map[string]any // прочие поля файла, ядро их не интерпретирует
}

// NewPolygon создаёт полигон с меткой по умолчанию и без группы.
func NewPolygon(points []Point) *Shape {
	return &Shape{
		Label:  DefaultLabel,
		Type:   ShapePolygon,
		Points: points,
		Flags:  map[string]bool{},
	}
}

// NewGroupID возвращает указатель на идентификатор группы.
func NewGroupID(id int) *int {
	return &id
}

// HasGroup сообщает, назначена ли фигуре группа.
func (s *Shape) HasGroup() bool {
	return s.GroupID != nil
}

// Clone возвращает глубокую копию фигуры.
func (s *Shape) Clone() *Shape {
	c := &Shape{
		Label:       s.Label,
		Type:        s.Type,
		Description: s.Description,
	}
	if s.GroupID != nil {
		c.GroupID = NewGroupID(*s.GroupID)
	}
	if s.Points != nil {
		c.Points = make([]Point, len(s.Points))
		copy(c.Points, s.Points)
	}
	if s.Flags != nil {
		c.Flags = make(map[string]bool, len(s.Flags))
		for k, v := range s.Flags {
			c.Flags[k] = v
		}
	}
	if s.OtherData != nil {
		c.OtherData = cloneValue(s.OtherData).(map[string]any)
	}
	return c
}

// Translate сдвигает все точки фигуры на offset.
func (s *Shape) Translate(offset Point) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(offset)
	}
}

// cloneValue копирует JSON-подобные значения (map, slice, скаляры).
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}
