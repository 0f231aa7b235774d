// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// CookieMedium keeps values as cookies scoped to the API origin. The same
// jar can be attached to an http.Client so cookie-authenticated REST calls
// see exactly what the session stored.
type CookieMedium struct {
	jar http.CookieJar
	url *url.URL
}

// NewCookieMedium returns a CookieMedium for baseURL. A nil jar gets a fresh
// in-memory cookiejar.
func NewCookieMedium(jar http.CookieJar, baseURL string) (*CookieMedium, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("credentials: invalid cookie url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("credentials: cookie url %q must be absolute", baseURL)
	}
	if jar == nil {
		jar, err = cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
	}
	root := *u
	root.Path = "/"
	root.RawQuery = ""
	return &CookieMedium{jar: jar, url: &root}, nil
}

// Jar returns the underlying cookie jar.
func (c *CookieMedium) Jar() http.CookieJar {
	return c.jar
}

func (c *CookieMedium) Get(_ context.Context, key string) (string, bool, error) {
	for _, ck := range c.jar.Cookies(c.url) {
		if ck.Name == key {
			return ck.Value, true, nil
		}
	}
	return "", false, nil
}

func (c *CookieMedium) Set(_ context.Context, key, value string) error {
	c.jar.SetCookies(c.url, []*http.Cookie{{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.url.Scheme == "https",
		SameSite: http.SameSiteLaxMode,
	}})
	return nil
}

func (c *CookieMedium) Remove(_ context.Context, key string) error {
	c.jar.SetCookies(c.url, []*http.Cookie{{
		Name:   key,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
	return nil
}
