// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/credentials"
	"github.com/taskflow-dev/taskflow/internal/db"
)

// Credential stores selectable with credentials.store.
const (
	StoreFile     = "file"
	StoreDatabase = "database"
	StoreCookie   = "cookie"
	StoreMemory   = "memory"
	StoreNone     = "none"
)

// Option customises New.
type Option func(*options)

type options struct {
	navigator  Navigator
	registerer prometheus.Registerer
	logger     *clog.Logger
	userAgent  string
	medium     credentials.Medium
}

// WithNavigator receives the route changes of login, logout and failed
// refreshes.
func WithNavigator(n Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// WithRegisterer exports the session metrics to reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithLogger replaces the process logger.
func WithLogger(l *clog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent sets the User-Agent for backend requests.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithMedium bypasses credentials.store and uses m.
func WithMedium(m credentials.Medium) Option {
	return func(o *options) { o.medium = m }
}

// openMedium returns the medium selected by cfg. closer may be nil. The
// cookie medium writes into jar. The cookie and memory stores live as long
// as the process, so they only suit embedders that keep one client around;
// log is warned when one of them is picked.
func openMedium(ctx context.Context, cfg config.CredentialsConfig, baseURL string, jar http.CookieJar, log *clog.Logger) (credentials.Medium, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case "", StoreFile:
		path := cfg.Path
		if path == "" {
			p, err := config.DefaultCredentialsPath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return credentials.NewFileMedium(path), nil, nil
	case StoreDatabase:
		table, err := db.Open(ctx, cfg.Database.Type, cfg.Database.Dsn)
		if err != nil {
			return nil, nil, err
		}
		return table, table, nil
	case StoreCookie:
		m, err := credentials.NewCookieMedium(jar, baseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Warn("credentials are kept in memory and lost when the process exits", "store", StoreCookie)
		return m, nil, nil
	case StoreMemory:
		log.Warn("credentials are kept in memory and lost when the process exits", "store", StoreMemory)
		return credentials.NewMemoryMedium(), nil, nil
	case StoreNone:
		return nil, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown credentials store %q", cfg.Store)
}
