// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taskflow-dev/taskflow/client"
	"github.com/taskflow-dev/taskflow/internal/i18n"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend health and API version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				var (
					health client.Health
					info   client.Info
				)
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					var err error
					health, err = c.Health(gctx)
					return err
				})
				g.Go(func() error {
					var err error
					info, err = c.Info(gctx)
					return err
				})
				if err := g.Wait(); err != nil {
					return errors.New(i18n.T("status.failed", err))
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, i18n.T("status.health", health.Status))
				fmt.Fprintln(out, i18n.T("status.api", info.Message, info.Version))
				names := make([]string, 0, len(info.Endpoints))
				for name := range info.Endpoints {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(out, i18n.T("status.endpoint", name, info.Endpoints[name]))
				}
				return nil
			})
		},
	}
}
