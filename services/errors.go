package services

import "errors"

// Классы ошибок доменного слоя. Хендлеры транслируют их в HTTP статусы
// через errors.Is, конкретная причина добавляется через %w.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
)
