package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-contract caller input.
// Message text is part of the API contract; clients pattern-match on it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced quiz or question does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFoundError builds a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

var (
	// ErrQuizNotFound is returned when a quiz id does not resolve.
	ErrQuizNotFound = &NotFoundError{Message: "Quiz not found"}
	// ErrQuestionNotFound is returned when a question id does not resolve within a quiz.
	ErrQuestionNotFound = &NotFoundError{Message: "Question not found"}
	// ErrQuizHasNoQuestions is returned when questions are requested from an empty quiz.
	ErrQuizHasNoQuestions = &NotFoundError{Message: "Quiz has no questions"}
)
