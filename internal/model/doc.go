// Package model defines domain entities and data structures for the Ember API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Question: One immutable entry in the question bank, with its category,
//     answer type, scale or choice metadata, and optional unacceptable set
//   - Response: A user's current answer to one question, with importance
//   - CompatibilityResult: The computed bidirectional match between two users
//   - Explanation: The ranked positive/negative drivers of a match score
//
// # Closed Enumerations
//
// Categories, question types, and importance levels are closed typed values
// with Parse functions, so invalid strings are rejected at the boundary:
//
//	cat, err := model.ParseCategory("VALUES")
//	imp, err := model.ParseImportance("mandatory")
//
// Importance is ordinal (irrelevant < low < medium < high < mandatory) and
// carries the fixed match weight for each level.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go; ValidationError
// in validation.go carries a closed reason code with the offending question
// id for rejected answers.
package model
