// Package service implements the business logic layer for the Ember API.
//
// The service package contains the compatibility engine: answer validation,
// next-question selection, the weighted bidirectional match calculation, and
// the match explanation generator, plus the assessment orchestration that
// ties them to the question catalog and the response store.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or typed errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Purity
//
// Validation, selection, scoring, and explanation are pure functions over
// the inputs they are given: a question bank snapshot and response
// snapshots. They hold no mutable state and are safe to call concurrently.
// Only the assessment service touches the response store, and only to fetch
// snapshots or upsert validated responses.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrQuestionNotFound  = errors.New("question not found")
//	    ErrInsufficientData  = errors.New("no shared answered questions")
//	)
//
// ErrInsufficientData is an expected outcome, not a fault; callers must
// branch on it explicitly.
package service
