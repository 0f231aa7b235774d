// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/model"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// RequestIDHeader carries a per-request id so backend logs can be matched.
const RequestIDHeader = "X-Request-ID"

const (
	meQuery = `query Me {
  me { id email createdAt }
}`
	loginMutation = `mutation Login($input: LoginInput!) {
  login(input: $input) { accessToken refreshToken user { id email createdAt } }
}`
	registerMutation = `mutation Register($input: RegisterInput!) {
  register(input: $input) { accessToken refreshToken user { id email createdAt } }
}`
	refreshTokenMutation = `mutation RefreshToken($input: RefreshTokenInput!) {
  refreshToken(input: $input) { accessToken refreshToken user { id email createdAt } }
}`
	logoutMutation = `mutation Logout($input: RefreshTokenInput!) {
  logout(input: $input)
}`
)

// Client is a GraphQL-over-HTTP client for the session operations.
type Client struct {
	endpoint  string
	http      *http.Client
	userAgent string
	requestID func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a Client for the GraphQL endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: 15 * time.Second},
		userAgent: "taskflow",
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the GraphQL URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Me asks who the bearer of accessToken is. A nil user with a nil error
// means the backend answered but did not recognise the token.
func (c *Client) Me(ctx context.Context, accessToken string) (*model.User, error) {
	var data struct {
		Me *model.User `json:"me"`
	}
	if err := c.do(ctx, "me", "Me", meQuery, nil, accessToken, &data); err != nil {
		return nil, err
	}
	return data.Me, nil
}

// Login exchanges e-mail and password for a fresh credential pair.
func (c *Client) Login(ctx context.Context, email, password string) (model.AuthPayload, error) {
	var data struct {
		Login *model.AuthPayload `json:"login"`
	}
	vars := map[string]any{"input": map[string]string{"email": email, "password": password}}
	if err := c.do(ctx, "login", "Login", loginMutation, vars, "", &data); err != nil {
		return model.AuthPayload{}, err
	}
	return checkPayload("login", data.Login)
}

// Register creates an account and returns its first credential pair.
func (c *Client) Register(ctx context.Context, email, password string) (model.AuthPayload, error) {
	var data struct {
		Register *model.AuthPayload `json:"register"`
	}
	vars := map[string]any{"input": map[string]string{"email": email, "password": password}}
	if err := c.do(ctx, "register", "Register", registerMutation, vars, "", &data); err != nil {
		return model.AuthPayload{}, err
	}
	return checkPayload("register", data.Register)
}

// RefreshToken exchanges the refresh token for a new pair. The backend
// rotates refresh tokens, so the old one is no longer valid afterwards.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (model.AuthPayload, error) {
	var data struct {
		RefreshToken *model.AuthPayload `json:"refreshToken"`
	}
	vars := map[string]any{"input": map[string]string{"refreshToken": refreshToken}}
	if err := c.do(ctx, "refreshToken", "RefreshToken", refreshTokenMutation, vars, "", &data); err != nil {
		return model.AuthPayload{}, err
	}
	return checkPayload("refreshToken", data.RefreshToken)
}

// Logout asks the backend to revoke refreshToken.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var data struct {
		Logout bool `json:"logout"`
	}
	vars := map[string]any{"input": map[string]string{"refreshToken": refreshToken}}
	return c.do(ctx, "logout", "Logout", logoutMutation, vars, "", &data)
}

func checkPayload(op string, p *model.AuthPayload) (model.AuthPayload, error) {
	if p == nil || !p.Credentials().Complete() {
		return model.AuthPayload{}, &Error{Op: op, StatusCode: http.StatusOK, Message: "response did not contain a token pair"}
	}
	return *p, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func (c *Client) do(ctx context.Context, op, operationName, query string, vars map[string]any, bearer string, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, OperationName: operationName, Variables: vars})
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, c.requestID())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	var gr graphQLResponse
	decodeErr := json.Unmarshal(raw, &gr)
	if decodeErr == nil && len(gr.Errors) > 0 {
		first := gr.Errors[0]
		return &Error{Op: op, StatusCode: resp.StatusCode, Code: first.Extensions.Code, Message: first.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: HTTPDetail(raw, resp.StatusCode)}
	}
	if decodeErr != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if out != nil && len(gr.Data) > 0 && string(gr.Data) != "null" {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

// HTTPDetail extracts the human-readable error text from a non-2xx body.
// It understands {"detail": ...} and {"error": ...} envelopes and falls back
// to the status text.
func HTTPDetail(body []byte, status int) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		var detail string
		if len(envelope.Detail) > 0 && json.Unmarshal(envelope.Detail, &detail) == nil && strings.TrimSpace(detail) != "" {
			return detail
		}
		if strings.TrimSpace(envelope.Error) != "" {
			return envelope.Error
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
