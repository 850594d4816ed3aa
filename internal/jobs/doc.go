// Package jobs implements background tasks for the Embermatch API.
//
// Jobs run independently of HTTP request handling and are started from
// main after the services they depend on are wired. Each job owns its
// goroutine and supports graceful Stop.
//
// Available jobs:
//
//   - BankRefresher: watches the question bank file and hot-reloads
//     the in-memory catalog when the file changes on disk.
package jobs
