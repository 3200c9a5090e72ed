package catalog

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrStudioNotFound = errors.New("studio not found")
	ErrValidation     = errors.New("validation error")
)
