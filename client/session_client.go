// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/taskflow-dev/taskflow/internal/api"
	"github.com/taskflow-dev/taskflow/internal/backend"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/credentials"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/session"
)

// SessionClient is the Client backed by the TaskFlow backend.
type SessionClient struct {
	manager *session.Manager
	rest    *api.Client
	closer  io.Closer
}

// *SessionClient implements Client
var _ Client = (*SessionClient)(nil)

// --- Lifecycle & Initialization ---

// New wires a SessionClient from cfg: it opens the credential medium, builds
// the GraphQL and REST clients on one cookie jar and creates the session
// manager. The identity is unresolved until Sync is called.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*SessionClient, error) {
	o := options{userAgent: "taskflow"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.L
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: cfg.API.Timeout, Jar: jar}

	medium, closer := o.medium, io.Closer(nil)
	if medium == nil {
		medium, closer, err = openMedium(ctx, cfg.Credentials, cfg.API.BaseURL, jar, o.logger)
		if err != nil {
			return nil, fmt.Errorf("open credentials store: %w", err)
		}
	}

	gql := backend.New(cfg.API.GraphQLURL, backend.WithHTTPClient(httpClient), backend.WithUserAgent(o.userAgent))
	mgr, err := session.New(session.Options{
		Store:       credentials.NewStore(medium),
		Backend:     gql,
		Navigator:   o.navigator,
		Logger:      o.logger,
		Registerer:  o.registerer,
		RefreshSkew: cfg.Session.RefreshSkew,
	})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	rest := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(httpClient),
		api.WithTokenSource(mgr),
		api.WithUserAgent(o.userAgent),
	)
	o.logger.Debug("client ready", "graphql", gql.Endpoint(), "api", rest.BaseURL(), "store", cfg.Credentials.Store)
	return &SessionClient{manager: mgr, rest: rest, closer: closer}, nil
}

// Close releases the credential medium.
func (c *SessionClient) Close(ctx context.Context) error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// Manager exposes the underlying session manager.
func (c *SessionClient) Manager() *session.Manager { return c.manager }

// --- Session state ---

func (c *SessionClient) Identity() *User { return c.manager.Identity() }

func (c *SessionClient) Loading() bool { return c.manager.Loading() }

func (c *SessionClient) Sync(ctx context.Context) QueryResult { return c.manager.Sync(ctx) }

func (c *SessionClient) AccessToken(ctx context.Context) (string, error) {
	return c.manager.AccessToken(ctx)
}

// --- Session mutations ---

func (c *SessionClient) Login(ctx context.Context, email, password string) (*User, error) {
	return c.manager.Login(ctx, email, password)
}

func (c *SessionClient) Register(ctx context.Context, email, password string) (*User, error) {
	return c.manager.Register(ctx, email, password)
}

func (c *SessionClient) Logout(ctx context.Context) error { return c.manager.Logout(ctx) }

func (c *SessionClient) Refresh(ctx context.Context) error { return c.manager.Refresh(ctx) }

// --- REST ---

func (c *SessionClient) Health(ctx context.Context) (Health, error) { return c.rest.Health(ctx) }

func (c *SessionClient) Info(ctx context.Context) (Info, error) { return c.rest.Info(ctx) }
