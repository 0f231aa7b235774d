// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskflow-dev/taskflow/internal/backend"
	"github.com/taskflow-dev/taskflow/internal/model"
)

const (
	defaultLoginMessage    = "Login failed. Please check your credentials and try again."
	defaultRegisterMessage = "Registration failed. Please try again."
)

// Login signs in with e-mail and password. On success the credential pair
// is stored, the identity set and the navigator sent to RouteHome. On
// failure it returns an *InvalidCredentialsError and changes nothing.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	user, err := m.signIn(ctx, "login", loginInput{Email: email, Password: password}, defaultLoginMessage,
		func() (model.AuthPayload, error) { return m.backend.Login(ctx, email, password) })
	m.metrics.mutations.WithLabelValues("login", resultLabel(err)).Inc()
	return user, err
}

// Register creates an account and signs in with it. It has the same
// contract as Login.
func (m *Manager) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	user, err := m.signIn(ctx, "register", registerInput{Email: email, Password: password}, defaultRegisterMessage,
		func() (model.AuthPayload, error) { return m.backend.Register(ctx, email, password) })
	m.metrics.mutations.WithLabelValues("register", resultLabel(err)).Inc()
	return user, err
}

func (m *Manager) signIn(ctx context.Context, op string, input any, fallback string, call func() (model.AuthPayload, error)) (*model.User, error) {
	if err := validateInput(m.validate, input); err != nil {
		return nil, err
	}
	payload, err := call()
	if err != nil {
		m.log.Info("sign-in rejected", "op", op, "err", err)
		return nil, &InvalidCredentialsError{Message: rejectionMessage(err, fallback), Err: err}
	}
	gen, err := m.startSession(ctx, payload.Credentials())
	if err != nil {
		return nil, fmt.Errorf("session: %s: store credentials: %w", op, err)
	}
	if payload.User != nil {
		m.setIdentityAt(gen, payload.User)
		m.finishLoading()
	} else {
		m.Sync(ctx)
	}
	m.nav.Navigate(RouteHome)
	return m.Identity(), nil
}

// rejectionMessage picks the most specific text for a failed sign-in: the
// backend message, then the transport error, then fallback.
func rejectionMessage(err error, fallback string) string {
	if be, ok := backend.AsError(err); ok {
		if d := be.Detail(); d != "" {
			return d
		}
		return fallback
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// Logout revokes the refresh token when one is stored, then clears the
// local session whatever the backend said and sends the navigator to
// RouteLogin. It only fails if the local credentials could not be removed.
func (m *Manager) Logout(ctx context.Context) error {
	token, ok, err := m.store.RefreshToken(ctx)
	if err != nil {
		m.log.Warn("could not read stored credentials before logout", "err", err)
	}
	if ok {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.log.Warn("backend logout failed, clearing local session anyway", "err", err)
		}
	}
	clearErr := m.endSession(ctx, "logout")
	m.nav.Navigate(RouteLogin)
	m.metrics.mutations.WithLabelValues("logout", resultLabel(clearErr)).Inc()
	if clearErr != nil {
		return fmt.Errorf("session: logout: %w", clearErr)
	}
	return nil
}
