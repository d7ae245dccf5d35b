// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so the console can decide how to present a failure
// (fatal diagnostic at startup versus a warning that lets the session continue).
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// CredentialsNotFound indicates that no credential source could be located.
	CredentialsNotFound Kind = "credentials_not_found"
	// CredentialsUnreadable indicates that a credential source exists but could not be read.
	CredentialsUnreadable Kind = "credentials_unreadable"
	// CredentialsInvalid indicates that a credential source could not be parsed.
	CredentialsInvalid Kind = "credentials_invalid"
	// KeychainUnavailable indicates that the OS credential store could not be opened.
	KeychainUnavailable Kind = "keychain_unavailable"
	// ConfigInvalid indicates a malformed configuration file or environment value.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
