// Package middleware provides HTTP middleware for the Embermatch API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token verification and user extraction
//   - RateLimit: Request rate limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware verifies bearer tokens issued by the identity
// service; this API never issues tokens itself. After authentication,
// handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetRequestID(ctx): Returns unique request identifier
//   - GetClaims(ctx): Returns verified JWT claims
package middleware
