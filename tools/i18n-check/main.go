// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-check compares the message ids passed to i18n.T in the Go sources
// with the embedded locale files. It exits non-zero when a used id is
// missing from any locale; ids that no code uses are only reported.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
	sourceRoot    = "."
)

var usageRe = regexp.MustCompile(`i18n\.T\(\s*"([^"]+)"`)

// report is the result of one check run.
type report struct {
	// missing maps a locale file to the used ids it lacks.
	missing map[string][]string
	// unused lists ids of the primary locale that no source file uses.
	unused []string
	used   int
}

func (r report) failed() bool {
	for _, ids := range r.missing {
		if len(ids) > 0 {
			return true
		}
	}
	return false
}

func main() {
	r, err := check(sourceRoot, localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-check: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("%d message ids used in source\n", r.used)

	files := make([]string, 0, len(r.missing))
	for f := range r.missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		for _, id := range r.missing[f] {
			fmt.Printf("missing  %s: %s\n", filepath.Base(f), id)
		}
	}
	for _, id := range r.unused {
		fmt.Printf("unused   %s\n", id)
	}
	if r.failed() {
		os.Exit(1)
	}
}

// check scans root for i18n.T ids and compares them with every *.yaml file
// in locales.
func check(root, locales string) (report, error) {
	used, err := usedIDs(root)
	if err != nil {
		return report{}, err
	}
	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return report{}, err
	}
	if len(files) == 0 {
		return report{}, fmt.Errorf("no locale files in %s", locales)
	}
	sort.Strings(files)

	r := report{missing: map[string][]string{}, used: len(used)}
	primary := files[0]
	for _, f := range files {
		if filepath.Base(f) == primaryLocale {
			primary = f
		}
	}
	for _, f := range files {
		ids, err := localeIDs(f)
		if err != nil {
			return report{}, fmt.Errorf("%s: %w", f, err)
		}
		for id := range used {
			if _, ok := ids[id]; !ok {
				r.missing[f] = append(r.missing[f], id)
			}
		}
		sort.Strings(r.missing[f])
		if f == primary {
			for id := range ids {
				if _, ok := used[id]; !ok {
					r.unused = append(r.unused, id)
				}
			}
			sort.Strings(r.unused)
		}
	}
	return r, nil
}

// usedIDs collects the literal first argument of every i18n.T call in the
// non-test Go files below root. The tools tree is skipped.
func usedIDs(root string) (map[string]struct{}, error) {
	ids := map[string]struct{}{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usageRe.FindAllSubmatch(src, -1) {
			ids[string(m[1])] = struct{}{}
		}
		return nil
	})
	return ids, err
}

// localeIDs returns the message ids of a go-i18n YAML file. Nested maps
// are joined with dots.
func localeIDs(path string) (map[string]struct{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	ids := map[string]struct{}{}
	collect("", doc, ids)
	return ids, nil
}

func collect(prefix string, node any, ids map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			ids[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		collect(key, v, ids)
	}
}
