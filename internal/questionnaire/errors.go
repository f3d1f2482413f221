package questionnaire

import (
	"errors"
	"strings"
)

// ErrInvalidAnswers is the sentinel wrapped by every ValidationError.
var ErrInvalidAnswers = errors.New("invalid answers")

// ValidationError lists every answer problem found in one Score call.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid answers: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidAnswers
}
