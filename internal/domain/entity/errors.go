package entity

import "errors"

// ErrAnnotationNotFound файл разметки для изображения ещё не сохранялся.
var ErrAnnotationNotFound = errors.New("annotation not found")
