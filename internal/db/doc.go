// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db stores session credentials in a SQL database through Bun.
//
// SQLite (pure Go, modernc.org/sqlite), PostgreSQL (pgx stdlib driver) and
// MySQL are supported. Schema changes are embedded per dialect under
// migrations/ and applied on open, tracked in schema_migrations.
//
// Testing notes
//   - Prefer `db.Open(ctx, "sqlite", ":memory:")` in tests that need real DB
//     semantics and migrations.
package db
