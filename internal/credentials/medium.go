// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import "context"

// Fixed keys under which the tokens are kept.
const (
	AccessTokenKey  = "taskflow_access_token"
	RefreshTokenKey = "taskflow_refresh_token"
)

// Medium is a key/value persistence capability.
// Get reports ok=false when the key is absent. Remove of an absent key is not
// an error.
type Medium interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
