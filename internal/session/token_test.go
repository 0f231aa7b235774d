// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskflow-dev/taskflow/internal/model"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAccessToken_Anonymous(t *testing.T) {
	h := newHarness(t)
	tok, err := h.m.AccessToken(context.Background())
	if err != nil || tok != "" {
		t.Fatalf("AccessToken = %q, %v", tok, err)
	}
}

func TestAccessToken_OpaqueTokenReturnedAsIs(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "opaque-access", "ref")
	tok, err := h.m.AccessToken(context.Background())
	if err != nil || tok != "opaque-access" {
		t.Fatalf("AccessToken = %q, %v", tok, err)
	}
	if h.be.count("refresh") != 0 {
		t.Fatalf("opaque tokens must not trigger a refresh")
	}
}

func TestAccessToken_FreshJWTNotRefreshed(t *testing.T) {
	h := newHarness(t)
	fresh := signedToken(t, time.Now().Add(time.Hour))
	h.seed(t, fresh, "ref")
	tok, err := h.m.AccessToken(context.Background())
	if err != nil || tok != fresh {
		t.Fatalf("AccessToken = %q, %v", tok, err)
	}
	if h.be.count("refresh") != 0 {
		t.Fatalf("fresh token must not trigger a refresh")
	}
}

func TestAccessToken_ExpiringJWTRefreshed(t *testing.T) {
	h := newHarness(t)
	h.seed(t, signedToken(t, time.Now().Add(5*time.Second)), "ref")
	h.be.refreshPayload = model.AuthPayload{AccessToken: "renewed", RefreshToken: "ref-2"}
	h.be.meUser = alice

	tok, err := h.m.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if tok != "renewed" {
		t.Fatalf("AccessToken = %q, want renewed", tok)
	}
	if h.be.count("refresh") != 1 {
		t.Fatalf("refresh exchanges = %d, want 1", h.be.count("refresh"))
	}
}
