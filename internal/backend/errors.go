// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeUnauthenticated is the GraphQL extension code the backend uses for a
// missing or invalid access token.
const CodeUnauthenticated = "UNAUTHENTICATED"

// Error describes a failed exchange with the backend.
//
// StatusCode is 0 when no HTTP response was received. Code is the first
// GraphQL error's extensions.code, if any. Message is the most specific text
// available: the first GraphQL error message, then the HTTP error detail.
type Error struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated reports a 401 response or an UNAUTHENTICATED GraphQL error.
func (e *Error) Unauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == CodeUnauthenticated
}

// Transient reports failures that say nothing about the credentials: no
// response at all, throttling, or a 5xx.
func (e *Error) Transient() bool {
	if e.Unauthenticated() {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Detail returns the backend-supplied message, falling back to the
// transport error text.
func (e *Error) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// AsError unwraps err into a *Error.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsUnauthenticated reports whether err is an authentication failure.
func IsUnauthenticated(err error) bool {
	be, ok := AsError(err)
	return ok && be.Unauthenticated()
}

// IsTransient reports whether err is a transient backend failure. Errors
// that are not *Error (for example a context deadline) are transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	be, ok := AsError(err)
	if !ok {
		return true
	}
	return be.Transient()
}
