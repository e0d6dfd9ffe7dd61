package entity

import "image"

// AnnotationSession состояние разметки одного изображения.
// Заменяется целиком при переходе к другому изображению.
type AnnotationSession struct {
	ImagePath string
	Index     int      // позиция в Images
	Images    []string // список изображений каталога, пустой для одиночного файла
	ImageData []byte   // исходные байты файла, уходят в imageData
	Image     image.Image
	Size      Size

	Annotations *AnnotationSet
	History     *EditHistory
	Prompt      PromptState
	Proposals   *ProposalSet
	Dirty       bool
}

// NewAnnotationSession открывает сеанс для декодированного изображения.
func NewAnnotationSession(path string, data []byte, img image.Image) *AnnotationSession {
	s := &AnnotationSession{
		ImagePath:   path,
		ImageData:   data,
		Image:       img,
		Annotations: NewAnnotationSet(),
		History:     NewEditHistory(),
	}
	if img != nil {
		b := img.Bounds()
		s.Size = Size{Width: b.Dx(), Height: b.Dy()}
	}
	return s
}

// ID ключ изображения, по нему же кэшируется кодирование в модели.
func (s *AnnotationSession) ID() string {
	return s.ImagePath
}

// ResetPrompt сбрасывает подсказку и гипотезы.
func (s *AnnotationSession) ResetPrompt() {
	s.Prompt = PromptState{}
	s.Proposals = nil
}

// HasNext есть ли следующее изображение в каталоге.
func (s *AnnotationSession) HasNext() bool {
	return s.Index < len(s.Images)-1
}

// HasPrevious есть ли предыдущее изображение в каталоге.
func (s *AnnotationSession) HasPrevious() bool {
	return s.Index > 0 && len(s.Images) > 0
}
