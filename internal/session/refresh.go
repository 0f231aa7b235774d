// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"fmt"

	"github.com/taskflow-dev/taskflow/internal/backend"
)

// flight is one refresh exchange. err is written once, before done closes.
type flight struct {
	done chan struct{}
	err  error
}

// Refresh exchanges the stored refresh token for a new credential pair.
//
// At most one exchange runs at a time: a call made while one is in flight
// waits for it and returns the same error value as every other waiter. On
// failure the stored credentials and the identity are cleared and the
// navigator is sent to RouteLogin. With nothing stored Refresh returns
// ErrNoRefreshToken without a network call.
//
// If the session is ended or replaced while the exchange runs, the new pair
// is dropped and every waiter gets an AuthenticationError wrapping
// ErrSessionChanged.
//
// A caller whose ctx ends stops waiting and gets ctx.Err(); the exchange
// itself keeps running for the others.
func (m *Manager) Refresh(ctx context.Context) error {
	m.refreshMu.Lock()
	f := m.inflight
	if f != nil {
		m.metrics.refreshCoalesced.Inc()
	} else {
		token, ok, err := m.store.RefreshToken(ctx)
		if err != nil {
			m.refreshMu.Unlock()
			return fmt.Errorf("session: read refresh token: %w", err)
		}
		if !ok {
			m.refreshMu.Unlock()
			return ErrNoRefreshToken
		}
		f = &flight{done: make(chan struct{})}
		m.inflight = f
		go m.fly(context.WithoutCancel(ctx), f, token, m.gen)
	}
	m.refreshMu.Unlock()

	m.metrics.refreshWaiters.Inc()
	defer m.metrics.refreshWaiters.Dec()
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) fly(ctx context.Context, f *flight, refreshToken string, gen uint64) {
	m.metrics.refreshExchanges.Inc()
	err := m.exchange(ctx, refreshToken, gen)

	m.refreshMu.Lock()
	m.inflight = nil
	m.refreshMu.Unlock()

	f.err = err
	close(f.done)
}

func (m *Manager) exchange(ctx context.Context, refreshToken string, gen uint64) error {
	payload, err := m.backend.RefreshToken(ctx, refreshToken)
	if err != nil {
		return m.failRefresh(ctx, gen, classify("refreshToken", err))
	}

	m.refreshMu.Lock()
	if m.gen != gen {
		m.refreshMu.Unlock()
		m.metrics.refreshFailures.Inc()
		m.log.Info("session changed during refresh, dropping new credentials")
		return &AuthenticationError{Op: "refreshToken", Err: ErrSessionChanged}
	}
	err = m.store.Save(ctx, payload.Credentials())
	m.refreshMu.Unlock()
	if err != nil {
		return m.failRefresh(ctx, gen, fmt.Errorf("session: store refreshed credentials: %w", err))
	}

	m.log.Debug("credentials refreshed")
	m.Sync(ctx)
	return nil
}

// failRefresh ends the session the exchange was started for. A session
// that already ended or was replaced is left alone.
func (m *Manager) failRefresh(ctx context.Context, gen uint64, err error) error {
	m.metrics.refreshFailures.Inc()
	ended, _ := m.endSessionAt(ctx, "refreshToken", gen)
	if !ended {
		m.log.Info("refresh failed after the session changed", "err", err)
		return err
	}
	m.log.Warn("refresh failed, ending session", "err", err)
	m.nav.Navigate(RouteLogin)
	return err
}

// classify wraps a backend failure in the session error type for its kind.
func classify(op string, err error) error {
	if backend.IsTransient(err) {
		return &TransientBackendError{Op: op, Err: err}
	}
	return &AuthenticationError{Op: op, Err: err}
}
