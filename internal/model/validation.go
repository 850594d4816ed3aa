package model

import "fmt"

// ValidationCode is a closed set of reasons an answer can be rejected.
type ValidationCode string

const (
	ValidationUnknownQuestion   ValidationCode = "UNKNOWN_QUESTION"
	ValidationOutOfRange        ValidationCode = "OUT_OF_RANGE"
	ValidationUnknownChoice     ValidationCode = "UNKNOWN_CHOICE"
	ValidationEmptyChoices      ValidationCode = "EMPTY_CHOICES"
	ValidationDuplicateChoice   ValidationCode = "DUPLICATE_CHOICE"
	ValidationTextEmpty         ValidationCode = "TEXT_EMPTY"
	ValidationTextTooLong       ValidationCode = "TEXT_TOO_LONG"
	ValidationInvalidImportance ValidationCode = "INVALID_IMPORTANCE"
	ValidationTypeMismatch      ValidationCode = "TYPE_MISMATCH"
)

// ValidationError rejects a single answer. In a batch submission the
// other answers may still be applied; the error identifies exactly which
// question was at fault and why.
type ValidationError struct {
	QuestionID string
	Code       ValidationCode
	Message    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("answer to %s rejected (%s): %s", e.QuestionID, e.Code, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(questionID string, code ValidationCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		QuestionID: questionID,
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
	}
}
