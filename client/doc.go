// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client is the entry point for UI code: it wires the session
// library from configuration and exposes the identity, the loading flag and
// the session operations behind the Client interface.
package client
