// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for TaskFlow.
//
// Usage:
//
//	go run . [command] [flags]
//	./taskflow login --email you@example.com
//
// See --help for the available commands.
package main

import (
	"fmt"
	"os"

	"github.com/taskflow-dev/taskflow/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
