// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package buildvars

import "testing"

func TestVersionOrDefault(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = ""
	if got := VersionOrDefault("dev"); got != "dev" {
		t.Fatalf("VersionOrDefault = %q, want dev", got)
	}
	if got := UserAgent(); got != "taskflow-cli/dev" {
		t.Fatalf("UserAgent = %q", got)
	}
	Version = "1.2.3"
	if got := UserAgent(); got != "taskflow-cli/1.2.3" {
		t.Fatalf("UserAgent = %q", got)
	}
}
