package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"sam-annotator/internal/domain/entity"
)

// AnnotationSuffix расширение файла разметки.
const AnnotationSuffix = ".json"

// ключи фигуры, которые разбирает ядро; всё остальное уходит в OtherData
var shapeKeys = map[string]bool{
	"label":       true,
	"points":      true,
	"group_id":    true,
	"description": true,
	"shape_type":  true,
	"flags":       true,
}

type annotationFile struct {
	Version     string                                `json:"version"`
	Flags       map[string]bool                       `json:"flags"`
	Shapes      []*orderedmap.OrderedMap[string, any] `json:"shapes"`
	ImagePath   string                                `json:"imagePath"`
	ImageData   []byte                                `json:"imageData"`
	ImageHeight int                                   `json:"imageHeight"`
	ImageWidth  int                                   `json:"imageWidth"`
}

type rawAnnotationFile struct {
	Version     string                       `json:"version"`
	Flags       map[string]bool              `json:"flags"`
	Shapes      []map[string]json.RawMessage `json:"shapes"`
	ImagePath   string                       `json:"imagePath"`
	ImageData   []byte                       `json:"imageData"`
	ImageHeight int                          `json:"imageHeight"`
	ImageWidth  int                          `json:"imageWidth"`
}

// AnnotationFileName имя файла разметки для изображения: базовое имя без расширения + .json.
func AnnotationFileName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + AnnotationSuffix
}

// EncodeAnnotation сериализует документ в формат файла разметки.
func EncodeAnnotation(doc *entity.AnnotationDocument) ([]byte, error) {
	out := annotationFile{
		Version:     doc.Version,
		Flags:       doc.Flags,
		Shapes:      make([]*orderedmap.OrderedMap[string, any], 0, len(doc.Shapes)),
		ImagePath:   doc.ImagePath,
		ImageData:   doc.ImageData,
		ImageHeight: doc.ImageHeight,
		ImageWidth:  doc.ImageWidth,
	}
	if out.Version == "" {
		out.Version = entity.AnnotationVersion
	}
	if out.Flags == nil {
		out.Flags = map[string]bool{}
	}
	for _, s := range doc.Shapes {
		out.Shapes = append(out.Shapes, encodeShape(s))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal annotation: %w", err)
	}
	return data, nil
}

func encodeShape(s *entity.Shape) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any]()

	points := make([][2]float64, len(s.Points))
	for i, p := range s.Points {
		points[i] = [2]float64{p.X, p.Y}
	}
	var groupID any
	if s.GroupID != nil {
		groupID = strconv.Itoa(*s.GroupID)
	}
	flags := s.Flags
	if flags == nil {
		flags = map[string]bool{}
	}
	shapeType := s.Type
	if shapeType == "" {
		shapeType = entity.ShapePolygon
	}

	m.Set("label", s.Label)
	m.Set("points", points)
	m.Set("group_id", groupID)
	m.Set("description", s.Description)
	m.Set("shape_type", string(shapeType))
	m.Set("flags", flags)

	keys := make([]string, 0, len(s.OtherData))
	for k := range s.OtherData {
		if !shapeKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Set(k, s.OtherData[k])
	}
	return m
}

// DecodeAnnotation разбирает файл разметки. Метки не переводятся через список категорий,
// фигуры без точек сохраняются: это решает загрузчик.
func DecodeAnnotation(data []byte) (*entity.AnnotationDocument, error) {
	var raw rawAnnotationFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal annotation: %w", err)
	}

	doc := &entity.AnnotationDocument{
		Version:     raw.Version,
		Flags:       raw.Flags,
		Shapes:      make([]*entity.Shape, 0, len(raw.Shapes)),
		ImagePath:   raw.ImagePath,
		ImageData:   raw.ImageData,
		ImageHeight: raw.ImageHeight,
		ImageWidth:  raw.ImageWidth,
	}
	if doc.Flags == nil {
		doc.Flags = map[string]bool{}
	}
	for i, fields := range raw.Shapes {
		s, err := decodeShape(fields)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		doc.Shapes = append(doc.Shapes, s)
	}
	return doc, nil
}

func decodeShape(fields map[string]json.RawMessage) (*entity.Shape, error) {
	s := &entity.Shape{
		Type:  entity.ShapePolygon,
		Flags: map[string]bool{},
	}

	if v, ok := fields["label"]; ok {
		if err := json.Unmarshal(v, &s.Label); err != nil {
			return nil, fmt.Errorf("label: %w", err)
		}
	}
	if v, ok := fields["points"]; ok {
		var points [][]float64
		if err := json.Unmarshal(v, &points); err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		for _, p := range points {
			if len(p) < 2 {
				return nil, fmt.Errorf("points: expected [x, y], got %d values", len(p))
			}
			s.Points = append(s.Points, entity.Point{X: p[0], Y: p[1]})
		}
	}
	if v, ok := fields["group_id"]; ok {
		id, err := parseGroupID(v)
		if err != nil {
			return nil, err
		}
		s.GroupID = id
	}
	if v, ok := fields["description"]; ok {
		// null допустим
		_ = json.Unmarshal(v, &s.Description)
	}
	if v, ok := fields["shape_type"]; ok {
		var t string
		if err := json.Unmarshal(v, &t); err != nil {
			return nil, fmt.Errorf("shape_type: %w", err)
		}
		if t != "" {
			s.Type = entity.ShapeType(t)
		}
	}
	if v, ok := fields["flags"]; ok {
		var flags map[string]bool
		if err := json.Unmarshal(v, &flags); err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		if flags != nil {
			s.Flags = flags
		}
	}

	for k, v := range fields {
		if shapeKeys[k] {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		if s.OtherData == nil {
			s.OtherData = make(map[string]any)
		}
		s.OtherData[k] = value
	}
	return s, nil
}

// parseGroupID принимает null, "None", "", число и число в строке.
func parseGroupID(v json.RawMessage) (*int, error) {
	var value any
	if err := json.Unmarshal(v, &value); err != nil {
		return nil, fmt.Errorf("group_id: %w", err)
	}
	switch t := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return entity.NewGroupID(int(t)), nil
	case string:
		t = strings.TrimSpace(t)
		if t == "" || t == "None" || t == "null" {
			return nil, nil
		}
		id, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("group_id: invalid value %q", t)
		}
		return entity.NewGroupID(id), nil
	default:
		return nil, fmt.Errorf("group_id: unsupported type %T", value)
	}
}

// ReadAnnotationFile читает файл разметки с диска.
func ReadAnnotationFile(path string) (*entity.AnnotationDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("read annotation file: %w", err)
	}
	return DecodeAnnotation(data)
}

// WriteAnnotationFile записывает файл разметки, создавая каталог при необходимости.
func WriteAnnotationFile(path string, doc *entity.AnnotationDocument) error {
	data, err := EncodeAnnotation(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы не оставить обрезанный JSON.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write annotation file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename annotation file: %w", err)
	}
	return nil
}
