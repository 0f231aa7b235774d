// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/backend"
	"github.com/taskflow-dev/taskflow/internal/model"
)

// Outcome says how a Sync resolved the identity.
type Outcome int

const (
	// OutcomeSkipped means no access token was stored and no request was
	// sent, or a login or logout during the query made its answer stale.
	OutcomeSkipped Outcome = iota
	// OutcomeAuthenticated means the backend returned the identity.
	OutcomeAuthenticated
	// OutcomeRejected means the backend refused the access token. The
	// stored credentials were cleared.
	OutcomeRejected
	// OutcomeUnavailable means the backend could not be asked. The stored
	// credentials were kept.
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// QueryResult is what Sync resolved. Identity is nil unless Outcome is
// OutcomeAuthenticated. Err is an *AuthenticationError for OutcomeRejected
// and a *TransientBackendError (or a storage error) for OutcomeUnavailable.
type QueryResult struct {
	Identity *model.User
	Outcome  Outcome
	Err      error
}

// Sync runs the session query: it asks the backend who the stored access
// token belongs to and updates the identity. Sync never returns an error to
// propagate; failures are reported in the result.
func (m *Manager) Sync(ctx context.Context) QueryResult {
	res := m.query(ctx)
	m.metrics.queries.WithLabelValues(res.Outcome.String()).Inc()
	m.finishLoading()
	return res
}

func (m *Manager) query(ctx context.Context) QueryResult {
	gen := m.generation()
	token, ok, err := m.store.AccessToken(ctx)
	if err != nil {
		m.log.Warn("could not read stored credentials", "err", err)
		m.setIdentityAt(gen, nil)
		return QueryResult{Outcome: OutcomeUnavailable, Err: err}
	}
	if !ok {
		m.setIdentityAt(gen, nil)
		return QueryResult{Outcome: OutcomeSkipped}
	}

	user, err := m.backend.Me(ctx, token)
	switch {
	case err == nil && user != nil:
		if !m.setIdentityAt(gen, user) {
			m.log.Debug("session changed during query, ignoring answer")
			return QueryResult{Outcome: OutcomeSkipped}
		}
		m.log.Debug("session resolved", "user", user.ID)
		return QueryResult{Identity: m.Identity(), Outcome: OutcomeAuthenticated}
	case err == nil || backend.IsUnauthenticated(err):
		ended, _ := m.endSessionAt(ctx, "me", gen)
		if !ended {
			m.log.Debug("session changed during query, ignoring rejection")
			return QueryResult{Outcome: OutcomeSkipped}
		}
		m.log.Info("session rejected by backend, cleared credentials")
		return QueryResult{Outcome: OutcomeRejected, Err: &AuthenticationError{Op: "me", Err: err}}
	default:
		m.log.Warn("backend unavailable, keeping credentials", "err", err)
		m.setIdentityAt(gen, nil)
		return QueryResult{Outcome: OutcomeUnavailable, Err: &TransientBackendError{Op: "me", Err: err}}
	}
}
