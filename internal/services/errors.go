package services

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrPartNotFound          = errors.New("part not found")
	ErrDuplicateRelationship = errors.New("relationship already exists between these parts")
	ErrInvalidInput          = errors.New("invalid input")
	ErrQuotaExceeded         = errors.New("daily message limit reached")
	ErrForbidden             = errors.New("forbidden")
)
