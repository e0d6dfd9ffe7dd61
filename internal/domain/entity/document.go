package entity

// AnnotationVersion версия формата файла разметки.
const AnnotationVersion = "1.0.0"

// AnnotationDocument содержимое файла разметки одного изображения.
type AnnotationDocument struct {
	Version     string
	Flags       map[string]bool
	Shapes      []*Shape
	ImagePath   string
	ImageData   []byte
	ImageHeight int
	ImageWidth  int
}

// NewAnnotationDocument собирает документ из сеанса.
func NewAnnotationDocument(s *AnnotationSession) *AnnotationDocument {
	return &AnnotationDocument{
		Version:     AnnotationVersion,
		Flags:       map[string]bool{},
		Shapes:      s.Annotations.Shapes(),
		ImagePath:   s.ImagePath,
		ImageData:   s.ImageData,
		ImageHeight: s.Size.Height,
		ImageWidth:  s.Size.Width,
	}
}
