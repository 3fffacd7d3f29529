package services

import "errors"

// Ошибки валидации входных данных (HTTP слой отдает их как 400)
var (
	ErrEmptyTable    = errors.New("table is required")
	ErrNoItems       = errors.New("order must contain at least one item")
	ErrInvalidStatus = errors.New("invalid status")
)
