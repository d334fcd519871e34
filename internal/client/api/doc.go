// Package api contains the client-side gateway to the Ground Truth Studio
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, collection and QA pair management, retrieval search,
//     and answer generation.
//  2. A concrete REST implementation (see RESTClient) that manages an HTTP
//     connection pool, attaches the bearer token to every request, applies
//     one uniform request timeout, and maps HTTP failures to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrInvalidRequest. The full server response is available via errors.As
// with *APIError.
//
// Concurrency & Contexts
//
// Implementations are safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
//
// See Also
//
//   - Interface: Client
//   - REST impl: RESTClient
//   - Errors:    ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrInvalidRequest
package api
