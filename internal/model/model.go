// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the session data shared by the credential store, the
// backend transport and the session manager.
package model // import "github.com/taskflow-dev/taskflow/internal/model"

import "fmt"

// User is the authenticated principal as reported by the backend.
// A nil *User means anonymous.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// String returns the e-mail and id of the user.
func (u User) String() string {
	return fmt.Sprintf("%s (%s)", u.Email, u.ID)
}

// CredentialPair holds the two opaque bearer tokens. Both are present or
// both are absent.
type CredentialPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are set.
func (p CredentialPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// AuthPayload is returned by login, register and refresh exchanges.
// User may be nil for refresh responses that omit it.
type AuthPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Credentials returns the token pair carried by the payload.
func (p AuthPayload) Credentials() CredentialPair {
	return CredentialPair{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}
