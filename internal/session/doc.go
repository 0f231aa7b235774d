// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session owns the signed-in state of a TaskFlow client: the stored
// credential pair, the in-memory identity and the loading flag.
//
// All mutations go through a Manager. Sync resolves the identity with a
// "who am I" query, Refresh renews the credential pair with at most one
// exchange in flight, and Login, Register and Logout are the user-facing
// mutations. A Manager is safe for concurrent use.
package session
