// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
)

type MockClient struct {
	BaseClient Client
	Overwrites MockClientOverwrites
}

type MockClientOverwrites struct {
	Close       func(ctx context.Context) error
	Identity    func() *User
	Loading     func() bool
	Sync        func(ctx context.Context) QueryResult
	AccessToken func(ctx context.Context) (string, error)
	Login       func(ctx context.Context, email, password string) (*User, error)
	Register    func(ctx context.Context, email, password string) (*User, error)
	Logout      func(ctx context.Context) error
	Refresh     func(ctx context.Context) error
	Health      func(ctx context.Context) (Health, error)
	Info        func(ctx context.Context) (Info, error)
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(nil, MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(base Client, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{
		BaseClient: base,
		Overwrites: overwrites,
	}
}

// --- Client implementation ---

func (m *MockClient) Close(ctx context.Context) error {
	if m.Overwrites.Close != nil {
		return m.Overwrites.Close(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Close(ctx)
	}
	panic("MockClient.Close not implemented")
}
func (m *MockClient) Identity() *User {
	if m.Overwrites.Identity != nil {
		return m.Overwrites.Identity()
	} else if m.BaseClient != nil {
		return m.BaseClient.Identity()
	}
	panic("MockClient.Identity not implemented")
}
func (m *MockClient) Loading() bool {
	if m.Overwrites.Loading != nil {
		return m.Overwrites.Loading()
	} else if m.BaseClient != nil {
		return m.BaseClient.Loading()
	}
	panic("MockClient.Loading not implemented")
}
func (m *MockClient) Sync(ctx context.Context) QueryResult {
	if m.Overwrites.Sync != nil {
		return m.Overwrites.Sync(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Sync(ctx)
	}
	panic("MockClient.Sync not implemented")
}
func (m *MockClient) AccessToken(ctx context.Context) (string, error) {
	if m.Overwrites.AccessToken != nil {
		return m.Overwrites.AccessToken(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.AccessToken(ctx)
	}
	panic("MockClient.AccessToken not implemented")
}
func (m *MockClient) Login(ctx context.Context, email, password string) (*User, error) {
	if m.Overwrites.Login != nil {
		return m.Overwrites.Login(ctx, email, password)
	} else if m.BaseClient != nil {
		return m.BaseClient.Login(ctx, email, password)
	}
	panic("MockClient.Login not implemented")
}
func (m *MockClient) Register(ctx context.Context, email, password string) (*User, error) {
	if m.Overwrites.Register != nil {
		return m.Overwrites.Register(ctx, email, password)
	} else if m.BaseClient != nil {
		return m.BaseClient.Register(ctx, email, password)
	}
	panic("MockClient.Register not implemented")
}
func (m *MockClient) Logout(ctx context.Context) error {
	if m.Overwrites.Logout != nil {
		return m.Overwrites.Logout(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Logout(ctx)
	}
	panic("MockClient.Logout not implemented")
}
func (m *MockClient) Refresh(ctx context.Context) error {
	if m.Overwrites.Refresh != nil {
		return m.Overwrites.Refresh(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Refresh(ctx)
	}
	panic("MockClient.Refresh not implemented")
}
func (m *MockClient) Health(ctx context.Context) (Health, error) {
	if m.Overwrites.Health != nil {
		return m.Overwrites.Health(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Health(ctx)
	}
	panic("MockClient.Health not implemented")
}
func (m *MockClient) Info(ctx context.Context) (Info, error) {
	if m.Overwrites.Info != nil {
		return m.Overwrites.Info(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Info(ctx)
	}
	panic("MockClient.Info not implemented")
}
