// Package config manages application configuration for the Embermatch API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: token verification and local signing settings
//   - BankConfig: question bank file location
//
// # Key Environment Variables
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	DB_HOST, DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE
//	JWT_PUBLIC_KEY_PATH  - PEM key used to verify bearer tokens
//	QUESTION_BANK_PATH   - JSON file holding the question bank
//
// Sensible defaults are provided for development; production requires
// the JWT key paths to be set explicitly.
package config
