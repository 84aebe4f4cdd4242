package auth

// Package auth contains domain-level types for credential verification.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
)

// Identity represents the verified principal behind a bearer credential.
// Adapters map provider-specific responses into this shape.
type Identity struct {
	// ClerkID is the stable external user identifier returned by the
	// identity provider. It is the only join point between identity
	// and storage.
	ClerkID string
}

// ErrorKind classifies credential verification failures. The HTTP boundary
// maps kinds to status codes; everything below it works with kinds only.
type ErrorKind string

const (
	// KindCredentialMissing means no credential was presented at all.
	KindCredentialMissing ErrorKind = "credential_missing"
	// KindProviderUnavailable means the provider could not be reached or
	// answered with a server-side failure.
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	// KindProviderRejected means the provider refused the credential or
	// returned a session without a usable user identifier.
	KindProviderRejected ErrorKind = "provider_rejected"
	// KindOwnershipMismatch means a verified caller attempted to act on a
	// record owned by someone else.
	KindOwnershipMismatch ErrorKind = "ownership_mismatch"
)

// Error is a tagged verification error. The Cause carries provider detail
// for logs; it must never be echoed to API callers.
type Error struct {
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth %s: %v", e.Kind, e.Cause)
	}
	return "auth " + string(e.Kind)
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// CredentialMissing reports an absent or empty credential.
func CredentialMissing() error {
	return &Error{Kind: KindCredentialMissing}
}

// ProviderUnavailable wraps a transport or provider-side failure.
func ProviderUnavailable(cause error) error {
	return &Error{Kind: KindProviderUnavailable, Cause: cause}
}

// ProviderRejected wraps a provider refusal of the credential.
func ProviderRejected(cause error) error {
	return &Error{Kind: KindProviderRejected, Cause: cause}
}

// OwnershipMismatch reports a verified caller acting on a foreign record.
func OwnershipMismatch() error {
	return &Error{Kind: KindOwnershipMismatch}
}

// KindOf returns the ErrorKind of err, or "" when err is not an auth error.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsAuthError reports whether err is any tagged verification error.
func IsAuthError(err error) bool {
	var ae *Error
	return errors.As(err, &ae)
}

// IsCredentialMissing reports whether err is a missing-credential error.
func IsCredentialMissing(err error) bool { return KindOf(err) == KindCredentialMissing }

// IsProviderUnavailable reports whether err is an unavailable-provider error.
func IsProviderUnavailable(err error) bool { return KindOf(err) == KindProviderUnavailable }

// IsProviderRejected reports whether err is a rejected-credential error.
func IsProviderRejected(err error) bool { return KindOf(err) == KindProviderRejected }

// IsOwnershipMismatch reports whether err is an ownership-mismatch error.
func IsOwnershipMismatch(err error) bool { return KindOf(err) == KindOwnershipMismatch }
