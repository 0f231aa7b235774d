// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/api"
	"github.com/taskflow-dev/taskflow/internal/model"
	"github.com/taskflow-dev/taskflow/internal/session"
)

// Aliases of the session types a UI consumer handles.
type (
	// User is the signed-in account.
	User = model.User
	// QueryResult is what Sync resolved.
	QueryResult = session.QueryResult
	// Outcome tells the Sync results apart.
	Outcome = session.Outcome
	// Route is a navigation target.
	Route = session.Route
	// Navigator receives route changes after mutations.
	Navigator = session.Navigator
	// NavigatorFunc adapts a function to Navigator.
	NavigatorFunc = session.NavigatorFunc
	// Health is the answer of GET /health.
	Health = api.Health
	// Info is the answer of GET /api.
	Info = api.Info
	// TransientBackendError means the backend could not be reached.
	TransientBackendError = session.TransientBackendError
	// AuthenticationError means the backend rejected the session.
	AuthenticationError = session.AuthenticationError
	// InvalidCredentialsError is a rejected login or registration.
	InvalidCredentialsError = session.InvalidCredentialsError
)

// Routes and Sync outcomes.
const (
	RouteHome  = session.RouteHome
	RouteLogin = session.RouteLogin

	OutcomeSkipped       = session.OutcomeSkipped
	OutcomeAuthenticated = session.OutcomeAuthenticated
	OutcomeRejected      = session.OutcomeRejected
	OutcomeUnavailable   = session.OutcomeUnavailable
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNoRefreshToken        = session.ErrNoRefreshToken
	ErrAuthenticationFailure = session.ErrAuthenticationFailure
	ErrSessionChanged        = session.ErrSessionChanged
)

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string { return session.UserMessage(err) }

// Client is the session contract a UI consumer programs against.
// SessionClient implements it; MockClient stands in for it in tests.
type Client interface {
	// --- Lifecycle & Initialization ---

	// Close releases the credential medium and any open connections.
	Close(ctx context.Context) error

	// --- Session state ---

	// Identity returns the signed-in user, or nil when anonymous.
	Identity() *User

	// Loading reports whether the first Sync is still outstanding.
	Loading() bool

	// Sync asks the backend who the stored credentials belong to.
	Sync(ctx context.Context) QueryResult

	// AccessToken returns a usable access token, refreshing it when it is
	// about to expire. Empty when signed out.
	AccessToken(ctx context.Context) (string, error)

	// --- Session mutations ---

	// Login signs in and returns the new identity.
	Login(ctx context.Context, email, password string) (*User, error)

	// Register creates an account and signs in with it.
	Register(ctx context.Context, email, password string) (*User, error)

	// Logout ends the session locally whatever the backend answers.
	Logout(ctx context.Context) error

	// Refresh renews the credential pair, sharing one exchange between
	// concurrent callers.
	Refresh(ctx context.Context) error

	// --- REST ---

	// Health calls GET /health.
	Health(ctx context.Context) (Health, error)

	// Info calls GET /api.
	Info(ctx context.Context) (Info, error)
}
