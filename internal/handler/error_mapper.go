package handler

import (
	"errors"

	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Not Found Errors → 404 =====
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		return model.NewNotFoundError("question")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUnknownCategory):
		return model.NewValidationProblem([]model.FieldError{{Field: "category", Message: err.Error()}})
	case errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		return model.NewValidationProblem([]model.FieldError{{Field: "answers", Message: err.Error()}})

	// ===== Insufficient Data → 422 =====
	// Not a fault: the pair simply has no shared answered questions yet.
	case errors.Is(err, service.ErrInsufficientData):
		return model.NewInsufficientDataProblem(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
