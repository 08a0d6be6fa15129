package services

import (
	"errors"

	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// Error taxonomy surfaced to handlers. Validation failures are reported as
// validator.ValidationErrors; everything else from the store is a remote
// failure wrapped with context.
var (
	ErrExamNotFound         = errors.New("exam not found")
	ErrExamAlreadyExists    = errors.New("exam already exists")
	ErrSectionNotFound      = errors.New("section not found")
	ErrSectionAlreadyExists = errors.New("section already exists")
	ErrTopicAlreadyExists   = errors.New("topic already exists")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	// ErrQuizIndexOutOfRange covers index-addressed entry updates pointing
	// past the end of a batch's examDetails array.
	ErrQuizIndexOutOfRange = errors.New("quiz index out of range")
	// ErrInvalidQuizFormat means the upload was not a single JSON object.
	ErrInvalidQuizFormat = errors.New("invalid quiz format: expected a single quiz object")
)

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuizIndexOutOfRange) ||
		repositories.IsNotFoundError(err)
}

// IsConflict reports whether err maps to a 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrExamAlreadyExists) ||
		errors.Is(err, ErrSectionAlreadyExists) ||
		errors.Is(err, ErrTopicAlreadyExists)
}

// IsInvalidInput reports whether err maps to a 400.
func IsInvalidInput(err error) bool {
	if errors.Is(err, ErrInvalidQuizFormat) {
		return true
	}
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
