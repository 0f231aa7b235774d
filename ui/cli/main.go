// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the configuration and logging
// bootstrap, and the entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskflow-dev/taskflow/buildvars"
	"github.com/taskflow-dev/taskflow/client"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/i18n"
	"github.com/taskflow-dev/taskflow/internal/logging"
)

var version = buildvars.VersionOrDefault("dev") // this will be set by the linker
var gitCommit = "dev"                           // set at build time with the short commit SHA
var buildDate = ""                              // set at build time (RFC3339)
var cfgFile string
var metricsTextfile string
var showVersionFlag bool

var appConfig config.Config

// newClient builds the session client for a command. Tests replace it.
var newClient = func(ctx context.Context, cfg config.Config, opts ...client.Option) (client.Client, error) {
	return client.New(ctx, cfg, opts...)
}

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it specifically.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// The app can run on defaults.
			logging.Warnf("%s", i18n.T("config.error_write_default", writeErr))
		} else {
			logging.Infof("wrote default config to user config path")
		}
	} else if err != nil {
		return errors.New(i18n.T("config.error_load", err))
	}

	if err := logging.Setup(appConfig.Log.Level, appConfig.Log.File); err != nil {
		return err
	}
	i18n.Init(appConfig.Language)
	return nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() { _ = logging.Close() }()

	return NewRootCmd().ExecuteContext(ctx)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		// If the flag is set but the value is empty, do nothing.
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// withClient opens the session client, runs fn and closes the client again.
// When --metrics-textfile is set the session metrics are written there
// afterwards, also when fn failed.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c client.Client) error) error {
	ctx := cmd.Context()
	reg := prometheus.NewRegistry()
	c, err := newClient(ctx, appConfig,
		client.WithNavigator(&cliNavigator{out: cmd.ErrOrStderr()}),
		client.WithRegisterer(reg),
		client.WithUserAgent(buildvars.UserAgent()),
	)
	if err != nil {
		return errors.New(i18n.T("config.error_store", err))
	}
	runErr := fn(ctx, c)
	closeErr := c.Close(ctx)
	if metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(metricsTextfile, reg); err != nil {
			logging.Warnf("%s", i18n.T("config.error_metrics", err))
		}
	}
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskflow",
		Short: "taskflow signs you in to a TaskFlow backend and keeps the session alive.",
		Long: `taskflow manages a TaskFlow session from the command line.
It stores the access and refresh token pair in the configured credential
store, renews it when it is about to expire, and tells you who you are
signed in as.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				os.Exit(0)
			}
			return setupDefaultServices(cmd, args)
		},
	}
	cmd.Version = compositeVersion()

	// Define flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	pf.StringVar(&cfgFile, "config", "", "config file")
	pf.StringVar(&metricsTextfile, "metrics-textfile", "", "write session metrics in Prometheus text format to this file")
	pf.String("api-url", "", "TaskFlow REST base URL")
	pf.String("graphql-url", "", "TaskFlow GraphQL endpoint")
	pf.String("store", "", `credential store ("file", "database", "cookie", "memory", "none"); cookie and memory last for a single run`)
	pf.String("lang", "", `output language ("en", "de")`)
	pf.String("log-level", "", `log level ("debug", "info", "warn", "error")`)

	// Add a lightweight `version` subcommand so users and CI can run `taskflow version`.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", v)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", d)
			}
		},
	}

	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newRefreshCmd(),
		newTokenCmd(),
		newStatusCmd(),
		newConfigCmd(),
		versionCmd,
	)

	return cmd
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/taskflow-dev/taskflow" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// Fall back to the commit when no version could be resolved.
	if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && resolvedCommit != "" && resolvedCommit != "dev" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
