// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken returns the stored access token, or "" when signed out. A JWT
// whose exp is within the refresh skew is renewed through Refresh first;
// opaque tokens are returned as they are.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	token, ok, err := m.store.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("session: read access token: %w", err)
	}
	if !ok {
		return "", nil
	}
	if !m.expiresSoon(token) {
		return token, nil
	}
	m.log.Debug("access token about to expire, refreshing")
	if err := m.Refresh(ctx); err != nil {
		return "", err
	}
	token, _, err = m.store.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("session: read access token: %w", err)
	}
	return token, nil
}

// expiresSoon reports whether token is a JWT with an exp claim at or before
// now plus the refresh skew. The signature is not checked; only the backend
// can do that.
func (m *Manager) expiresSoon(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(m.now().Add(m.skew))
}
