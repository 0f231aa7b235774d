// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/client"
	"github.com/taskflow-dev/taskflow/internal/i18n"
)

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with e-mail and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, secret, err := newPrompter(cmd).credentials(email, password, false)
			if err != nil {
				return err
			}
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				u, err := c.Login(ctx, addr, secret)
				if err != nil {
					return errors.New(i18n.T("login.failed", client.UserMessage(err)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("login.success", displayName(u, addr)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, secret, err := newPrompter(cmd).credentials(email, password, true)
			if err != nil {
				return err
			}
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				u, err := c.Register(ctx, addr, secret)
				if err != nil {
					return errors.New(i18n.T("register.failed", client.UserMessage(err)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("register.success", displayName(u, addr)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				err := c.Logout(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("logout.done"))
				return err
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				res := c.Sync(ctx)
				out := cmd.OutOrStdout()
				switch res.Outcome {
				case client.OutcomeAuthenticated:
					u := res.Identity
					fmt.Fprintln(out, i18n.T("whoami.user", u.Email, u.ID, u.CreatedAt))
				case client.OutcomeRejected:
					fmt.Fprintln(out, i18n.T("whoami.rejected"))
				case client.OutcomeUnavailable:
					return errors.New(i18n.T("whoami.unavailable", res.Err))
				default:
					fmt.Fprintln(out, i18n.T("whoami.anonymous"))
				}
				return nil
			})
		},
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				err := c.Refresh(ctx)
				switch {
				case err == nil:
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("refresh.success"))
					return nil
				case errors.Is(err, client.ErrNoRefreshToken):
					fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("route.login"))
					return errors.New(i18n.T("refresh.no_token"))
				default:
					return errors.New(i18n.T("refresh.failed", client.UserMessage(err)))
				}
			})
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a valid access token, refreshing it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				tok, err := c.AccessToken(ctx)
				if err != nil {
					return errors.New(i18n.T("refresh.failed", client.UserMessage(err)))
				}
				if tok == "" {
					return errors.New(i18n.T("token.none"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), tok)
				return nil
			})
		},
	}
}

// displayName is the e-mail of u, or fallback when the backend did not
// return a user.
func displayName(u *client.User, fallback string) string {
	if u == nil || u.Email == "" {
		return fallback
	}
	return u.Email
}
