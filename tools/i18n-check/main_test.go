// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCheck_ReportsMissingAndUnused(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "a.go"), `package pkg
func f() { _ = i18n.T("login.success", "x"); _ = i18n.T( "logout.done") }`)
	writeFile(t, filepath.Join(root, "pkg", "a_test.go"), `package pkg
func g() { _ = i18n.T("only.in.tests") }`)
	writeFile(t, filepath.Join(root, "tools", "x.go"), `package x
func h() { _ = i18n.T("tool.id") }`)
	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "active.de.yaml"), "login.success: \"Angemeldet\"\n")
	writeFile(t, filepath.Join(locales, "active.en.yaml"), "login.success: \"Signed in\"\nlogout.done: \"Bye\"\nstale.id: \"old\"\n")

	r, err := check(root, locales)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if r.used != 2 {
		t.Fatalf("used = %d, want 2", r.used)
	}
	de := r.missing[filepath.Join(locales, "active.de.yaml")]
	if len(de) != 1 || de[0] != "logout.done" {
		t.Fatalf("missing in de = %v", de)
	}
	if len(r.missing[filepath.Join(locales, "active.en.yaml")]) != 0 {
		t.Fatalf("en must be complete")
	}
	if len(r.unused) != 1 || r.unused[0] != "stale.id" {
		t.Fatalf("unused = %v, want [stale.id]", r.unused)
	}
	if !r.failed() {
		t.Fatalf("missing ids must fail the check")
	}
}

func TestLocaleIDs_Nested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.yaml")
	writeFile(t, path, "status:\n  health: \"h\"\n  api: \"a\"\nflat: \"f\"\n")
	ids, err := localeIDs(path)
	if err != nil {
		t.Fatalf("localeIDs: %v", err)
	}
	for _, id := range []string{"status.health", "status.api", "flat"} {
		if _, ok := ids[id]; !ok {
			t.Fatalf("missing %s in %v", id, ids)
		}
	}
}

func TestCheck_NoLocales(t *testing.T) {
	if _, err := check(t.TempDir(), filepath.Join(t.TempDir(), "none")); err == nil {
		t.Fatalf("expected error without locale files")
	}
}
