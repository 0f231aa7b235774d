// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskflow-dev/taskflow/internal/credentials"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/model"
)

// DefaultRefreshSkew is how close to expiry an access token may get before
// AccessToken renews it.
const DefaultRefreshSkew = 30 * time.Second

// Backend is the set of session exchanges the Manager needs.
// *backend.Client implements it.
type Backend interface {
	Me(ctx context.Context, accessToken string) (*model.User, error)
	Login(ctx context.Context, email, password string) (model.AuthPayload, error)
	Register(ctx context.Context, email, password string) (model.AuthPayload, error)
	RefreshToken(ctx context.Context, refreshToken string) (model.AuthPayload, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Options configures a Manager. Backend is required; everything else has a
// usable zero value.
type Options struct {
	// Store holds the credential pair. Nil means a store without medium.
	Store *credentials.Store
	// Backend performs the network exchanges.
	Backend Backend
	// Navigator is told where to go after a mutation.
	Navigator Navigator
	// Logger defaults to logging.L.
	Logger *clog.Logger
	// Registerer receives the session metrics. Nil keeps them unexported.
	Registerer prometheus.Registerer
	// RefreshSkew defaults to DefaultRefreshSkew.
	RefreshSkew time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// State is a snapshot of what a UI consumer reads.
type State struct {
	Identity *model.User
	Loading  bool
}

// Manager coordinates the credential store, the backend and the identity.
type Manager struct {
	store    *credentials.Store
	backend  Backend
	nav      Navigator
	log      *clog.Logger
	metrics  *metrics
	validate *validator.Validate
	skew     time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	identity *model.User
	loading  bool

	// refreshMu guards inflight and gen, and serialises writes to the store
	// that start or end a session.
	refreshMu sync.Mutex
	inflight  *flight
	// gen changes whenever a session starts or ends.
	gen uint64
}

// New returns a Manager in the loading state. Call Sync to resolve the
// identity.
func New(opts Options) (*Manager, error) {
	if opts.Backend == nil {
		return nil, errors.New("session: backend is required")
	}
	m := &Manager{
		store:    opts.Store,
		backend:  opts.Backend,
		nav:      opts.Navigator,
		log:      opts.Logger,
		metrics:  newMetrics(opts.Registerer),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		skew:     opts.RefreshSkew,
		now:      opts.Now,
		loading:  true,
	}
	if m.store == nil {
		m.store = credentials.NewStore(nil)
	}
	if m.nav == nil {
		m.nav = discardNavigator{}
	}
	if m.log == nil {
		m.log = logging.L
	}
	if m.skew <= 0 {
		m.skew = DefaultRefreshSkew
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

// Identity returns the signed-in user, or nil when anonymous.
func (m *Manager) Identity() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return nil
	}
	u := *m.identity
	return &u
}

// Loading reports whether the first Sync has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// State returns identity and loading flag read together.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := State{Loading: m.loading}
	if m.identity != nil {
		u := *m.identity
		s.Identity = &u
	}
	return s
}

// Store returns the credential store the Manager writes to.
func (m *Manager) Store() *credentials.Store { return m.store }

func (m *Manager) setIdentity(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u == nil {
		m.identity = nil
		return
	}
	cp := *u
	m.identity = &cp
}

func (m *Manager) finishLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) generation() uint64 {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	return m.gen
}

// setIdentityAt sets the identity unless a session started or ended after
// gen was read.
func (m *Manager) setIdentityAt(gen uint64, u *model.User) bool {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	if m.gen != gen {
		return false
	}
	m.setIdentity(u)
	return true
}

// startSession stores pair as a new session. Nothing changes when the store
// refuses it.
func (m *Manager) startSession(ctx context.Context, pair model.CredentialPair) (uint64, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	if err := m.store.Save(ctx, pair); err != nil {
		return 0, err
	}
	m.gen++
	return m.gen, nil
}

// endSession clears the stored pair and the identity. A storage failure is
// logged and returned; the identity is reset either way.
func (m *Manager) endSession(ctx context.Context, op string) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	return m.endSessionLocked(ctx, op)
}

// endSessionAt is endSession for the session of generation gen only. It
// reports false and leaves everything alone if that session is gone.
func (m *Manager) endSessionAt(ctx context.Context, op string, gen uint64) (bool, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	if m.gen != gen {
		return false, nil
	}
	return true, m.endSessionLocked(ctx, op)
}

func (m *Manager) endSessionLocked(ctx context.Context, op string) error {
	m.gen++
	err := m.store.Clear(ctx)
	if err != nil {
		m.log.Error("could not clear stored credentials", "op", op, "err", err)
	}
	m.setIdentity(nil)
	return err
}
