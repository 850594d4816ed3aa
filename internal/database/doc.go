// Package database provides database connectivity for the Embermatch API.
//
// The database package abstracts SurrealDB operations and provides a
// consistent interface for data access across the application.
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "embermatch",
//	    Database:  "production",
//	    User:      "root",
//	    Password:  "secret",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// # Error Types
//
// Standard errors are defined for common failure cases; check them with
// errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
