// Package repository implements the data access layer for the
// Embermatch API.
//
// The only state the engine persists is answers: one current answer per
// (user, question) pair, replaced in place on resubmission. Questions
// come from the in-process bank, never from the database, and match
// scores are recomputed on demand rather than stored.
//
// Repositories accept the database.Database interface so tests can
// substitute a mock, and use parameterized SurrealQL with $variable
// syntax throughout.
package repository
