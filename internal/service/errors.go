// Package service contains the service layer for the Yeshua-Christ API
package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto the
// HTTP error taxonomy; everything else surfaces as Internal.
var (
	// ErrUnauthenticated covers every credential failure: missing token,
	// unknown token, expired token, orphaned session, bad password. Callers
	// must not be able to tell these apart.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a valid credential without sufficient privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation marks a business-rule violation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a duplicate-resource condition.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable marks an exhausted third-party fallback chain.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
