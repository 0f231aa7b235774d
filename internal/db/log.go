// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/taskflow-dev/taskflow/internal/logging"

func dbLogf(format string, v ...any) {
	logging.Debugf(format, v...)
}
