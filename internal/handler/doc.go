// Package handler implements the HTTP layer of the Embermatch API.
//
// Handlers are thin: they decode requests, pull the authenticated user
// from the request context, call a service, and encode the result.
// Errors cross the boundary as RFC 9457 problem details; MapServiceError
// centralizes the translation from service errors to HTTP statuses so
// every endpoint fails the same way.
package handler
