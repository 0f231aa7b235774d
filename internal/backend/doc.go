// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backend talks to the TaskFlow GraphQL endpoint for the session
// exchanges: me, login, register, refreshToken and logout.
//
// Every failure is returned as *Error so callers can tell an authentication
// failure from a transient outage from a plain rejection.
package backend
