// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskflow-dev/taskflow/internal/model"
)

// ErrIncompletePair is returned by Save when one of the tokens is empty.
var ErrIncompletePair = errors.New("credentials: access and refresh token must both be set")

// Store reads and writes the credential pair through a Medium.
type Store struct {
	medium Medium
}

// NewStore returns a Store backed by m. A nil m yields a Store that never
// holds credentials.
func NewStore(m Medium) *Store {
	return &Store{medium: m}
}

// Available reports whether a persistence medium is attached.
func (s *Store) Available() bool {
	return s != nil && s.medium != nil
}

// Save writes both tokens. If the refresh token cannot be written the access
// token is removed again so the pair never ends up half-written.
func (s *Store) Save(ctx context.Context, pair model.CredentialPair) error {
	if !s.Available() {
		return nil
	}
	if !pair.Complete() {
		return ErrIncompletePair
	}
	if err := s.medium.Set(ctx, AccessTokenKey, pair.AccessToken); err != nil {
		return fmt.Errorf("credentials: store access token: %w", err)
	}
	if err := s.medium.Set(ctx, RefreshTokenKey, pair.RefreshToken); err != nil {
		rollback := s.medium.Remove(ctx, AccessTokenKey)
		return errors.Join(fmt.Errorf("credentials: store refresh token: %w", err), rollback)
	}
	return nil
}

// Load returns the stored pair. ok is false unless both tokens are present.
func (s *Store) Load(ctx context.Context) (pair model.CredentialPair, ok bool, err error) {
	if !s.Available() {
		return model.CredentialPair{}, false, nil
	}
	access, hasAccess, err := s.medium.Get(ctx, AccessTokenKey)
	if err != nil {
		return model.CredentialPair{}, false, fmt.Errorf("credentials: load access token: %w", err)
	}
	refresh, hasRefresh, err := s.medium.Get(ctx, RefreshTokenKey)
	if err != nil {
		return model.CredentialPair{}, false, fmt.Errorf("credentials: load refresh token: %w", err)
	}
	pair = model.CredentialPair{AccessToken: access, RefreshToken: refresh}
	if !hasAccess || !hasRefresh || !pair.Complete() {
		return model.CredentialPair{}, false, nil
	}
	return pair, true, nil
}

// AccessToken returns the stored access token on its own. ok is false when
// the key is missing or empty.
func (s *Store) AccessToken(ctx context.Context) (string, bool, error) {
	return s.token(ctx, AccessTokenKey)
}

// RefreshToken returns the stored refresh token on its own, whether or not
// the access token is still present.
func (s *Store) RefreshToken(ctx context.Context) (string, bool, error) {
	return s.token(ctx, RefreshTokenKey)
}

func (s *Store) token(ctx context.Context, key string) (string, bool, error) {
	if !s.Available() {
		return "", false, nil
	}
	v, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("credentials: load %s: %w", key, err)
	}
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Clear removes both tokens. Both removals are attempted even if the first
// one fails.
func (s *Store) Clear(ctx context.Context) error {
	if !s.Available() {
		return nil
	}
	return errors.Join(
		s.medium.Remove(ctx, AccessTokenKey),
		s.medium.Remove(ctx, RefreshTokenKey),
	)
}
