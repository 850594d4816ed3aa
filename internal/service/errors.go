package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Assessment Errors =====
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrUnknownCategory  = errors.New("unknown question category")
	ErrEmptyBatch       = errors.New("no answers submitted")
	ErrBatchTooLarge    = errors.New("too many answers in one submission")
)

// ===== Matching Errors =====
var (
	// ErrInsufficientData means two users share no scorable answered
	// questions. This is a normal outcome, not a fault; callers must
	// branch on it rather than treat it as a server error.
	ErrInsufficientData = errors.New("no shared answered questions between users")
)

// MaxAnswersPerBatch caps a single submission. Large banks are answered
// across many requests during onboarding, never in one call.
const MaxAnswersPerBatch = 100
