// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credentials persists the access/refresh token pair.
//
// A Store sits on top of a Medium, a plain key/value capability with Get, Set
// and Remove. The medium is chosen at startup (file, cookie jar, database,
// memory) so the session logic never depends on where the tokens live. A
// Store without a medium behaves as if nothing was ever saved: reads report
// absent and writes succeed without effect.
package credentials
