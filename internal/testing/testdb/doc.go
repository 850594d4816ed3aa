// Package testdb provides test database utilities for the Embermatch API.
//
// The testdb package manages test database connections with automatic
// setup, migration, and cleanup. Each test gets an isolated SurrealDB
// namespace, so DB-backed tests can run in parallel without stepping on
// each other's data.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.DB for database operations
//	}
//
// Migrations under migrations/ are applied automatically on setup.
// Tests requiring a live database should skip when TEST_DB_HOST is not
// reachable; unit tests never touch testdb.
//
// # Shared Database
//
// For subtests that share schema setup cost:
//
//	tdb := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { tdb.SetupSubtest(t) })
package testdb
