// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type credentialRow struct {
	bun.BaseModel `bun:"table:session_credentials"`

	Name      string    `bun:"name,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// CredentialTable is a key/value view over the session_credentials table.
// It satisfies credentials.Medium.
type CredentialTable struct {
	bun *bun.DB
	now func() time.Time
}

// Get returns the value stored under key.
func (t *CredentialTable) Get(ctx context.Context, key string) (string, bool, error) {
	var row credentialRow
	err := t.bun.NewSelect().Model(&row).Where("name = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, MapDBError(err)
	}
	return row.Value, true, nil
}

// Set replaces the value stored under key. Delete and insert run in one
// transaction, which works the same on every supported dialect.
func (t *CredentialTable) Set(ctx context.Context, key, value string) error {
	row := &credentialRow{Name: key, Value: value, UpdatedAt: t.clock().UTC()}
	return t.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*credentialRow)(nil)).Where("name = ?", key).Exec(ctx); err != nil {
			return MapDBError(err)
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return MapDBError(err)
		}
		return nil
	})
}

// Remove deletes key. Removing an absent key is not an error.
func (t *CredentialTable) Remove(ctx context.Context, key string) error {
	_, err := t.bun.NewDelete().Model((*credentialRow)(nil)).Where("name = ?", key).Exec(ctx)
	return MapDBError(err)
}

// UpdatedAt reports when key was last written.
func (t *CredentialTable) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var row credentialRow
	err := t.bun.NewSelect().Model(&row).Column("updated_at").Where("name = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, MapDBError(err)
	}
	return row.UpdatedAt, true, nil
}

// Close releases the database connection.
func (t *CredentialTable) Close() error {
	return t.bun.Close()
}

func (t *CredentialTable) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}
