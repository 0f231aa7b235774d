// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"errors"
	"fmt"
)

// ErrNoRefreshToken is returned by Refresh when nothing is stored to refresh
// with. The caller should send the user to the login route.
var ErrNoRefreshToken = errors.New("no refresh token available")

// ErrSessionChanged is wrapped in the AuthenticationError a refresh returns
// when the session was ended or replaced while the exchange was in flight.
// The refreshed pair is discarded.
var ErrSessionChanged = errors.New("session changed during refresh")

// ErrAuthenticationFailure matches every AuthenticationError via errors.Is.
var ErrAuthenticationFailure = errors.New("authentication failed")

// TransientBackendError is a network failure, throttling or 5xx answer. It
// says nothing about the validity of the stored credentials.
type TransientBackendError struct {
	Op  string
	Err error
}

func (e *TransientBackendError) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Op, e.Err)
}

func (e *TransientBackendError) Unwrap() error { return e.Err }

// AuthenticationError means the backend rejected the session: a 401, an
// UNAUTHENTICATED error or a refused refresh token.
type AuthenticationError struct {
	Op  string
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrAuthenticationFailure)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrAuthenticationFailure, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrAuthenticationFailure) match.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailure
}

// InvalidCredentialsError is a rejected login or registration. Message is
// meant to be shown to the user as is.
type InvalidCredentialsError struct {
	Message string
	Err     error
}

func (e *InvalidCredentialsError) Error() string { return e.Message }

func (e *InvalidCredentialsError) Unwrap() error { return e.Err }

// UserMessage returns the text to show for err: the message of an
// InvalidCredentialsError, or err's own text otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ic *InvalidCredentialsError
	if errors.As(err, &ic) {
		return ic.Message
	}
	return err.Error()
}
