// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskflow-dev/taskflow/internal/credentials"
	"github.com/taskflow-dev/taskflow/internal/model"
)

// fakeBackend is a scripted Backend that counts calls.
type fakeBackend struct {
	mu sync.Mutex

	meUser *model.User
	meErr  error

	loginPayload    model.AuthPayload
	loginErr        error
	registerPayload model.AuthPayload
	registerErr     error

	refreshPayload model.AuthPayload
	refreshErr     error
	// refreshGate, when set, blocks RefreshToken until it is closed.
	refreshGate chan struct{}
	// refreshEntered receives a value every time RefreshToken is called.
	refreshEntered chan struct{}

	logoutErr error

	calls         map[string]int
	refreshTokens []string
	logoutTokens  []string
	meTokens      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}, refreshEntered: make(chan struct{}, 64)}
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) Me(ctx context.Context, accessToken string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["me"]++
	f.meTokens = append(f.meTokens, accessToken)
	if f.meErr != nil {
		return nil, f.meErr
	}
	if f.meUser == nil {
		return nil, nil
	}
	u := *f.meUser
	return &u, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (model.AuthPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["login"]++
	return f.loginPayload, f.loginErr
}

func (f *fakeBackend) Register(ctx context.Context, email, password string) (model.AuthPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["register"]++
	return f.registerPayload, f.registerErr
}

func (f *fakeBackend) RefreshToken(ctx context.Context, refreshToken string) (model.AuthPayload, error) {
	f.mu.Lock()
	f.calls["refresh"]++
	f.refreshTokens = append(f.refreshTokens, refreshToken)
	gate := f.refreshGate
	f.mu.Unlock()

	f.refreshEntered <- struct{}{}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshPayload, f.refreshErr
}

func (f *fakeBackend) Logout(ctx context.Context, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["logout"]++
	f.logoutTokens = append(f.logoutTokens, refreshToken)
	return f.logoutErr
}

// recordingNavigator remembers every route it was sent to.
type recordingNavigator struct {
	mu     sync.Mutex
	routes []Route
}

func (n *recordingNavigator) Navigate(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, r)
}

func (n *recordingNavigator) last() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}

// brokenMedium fails every Set and Remove.
type brokenMedium struct {
	*credentials.MemoryMedium
}

func (brokenMedium) Set(context.Context, string, string) error { return errors.New("read-only medium") }
func (brokenMedium) Remove(context.Context, string) error      { return errors.New("read-only medium") }

type harness struct {
	m     *Manager
	be    *fakeBackend
	nav   *recordingNavigator
	store *credentials.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, credentials.NewStore(credentials.NewMemoryMedium()))
}

func newHarnessWithStore(t *testing.T, store *credentials.Store) *harness {
	t.Helper()
	h := &harness{be: newFakeBackend(), nav: &recordingNavigator{}, store: store}
	m, err := New(Options{
		Store:      store,
		Backend:    h.be,
		Navigator:  h.nav,
		Registerer: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.m = m
	return h
}

func (h *harness) seed(t *testing.T, access, refresh string) {
	t.Helper()
	if err := h.store.Save(context.Background(), model.CredentialPair{AccessToken: access, RefreshToken: refresh}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (h *harness) stored(t *testing.T) (model.CredentialPair, bool) {
	t.Helper()
	pair, ok, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return pair, ok
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

var alice = &model.User{ID: "u1", Email: "alice@example.com", CreatedAt: "2024-05-01T10:00:00Z"}
