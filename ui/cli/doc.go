// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the taskflow command-line interface using Cobra.
// It loads configuration, sets up logging and translations, and delegates
// every session operation to the `client` package. CLI code should remain
// thin: it prompts, prints and maps errors to messages.
package cli
