// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for tumblr-repl.
// The root command loads OAuth credentials, prints the intro banner and runs
// the interactive console. Subcommands manage credentials kept in the OS keychain.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tumblr-repl/cli/internal/banner"
	"tumblr-repl/cli/internal/bridge"
	"tumblr-repl/cli/internal/config"
	"tumblr-repl/cli/internal/credentials"
	"tumblr-repl/cli/internal/logging"
	"tumblr-repl/cli/internal/shell"
	"tumblr-repl/cli/internal/tumblr"
	"tumblr-repl/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion     bool
	credentialsPath string
	promptOverride  string
	verbose         bool
	verifyTokens    bool
)

// errReported marks failures whose diagnostic has already been printed.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
// It starts the interactive Tumblr API console.
var rootCmd = &cobra.Command{
	Use:   "tumblr-repl",
	Short: "Interactive console for the Tumblr API",
	Long: `tumblr-repl opens an interactive console for the Tumblr v2 API.

Credentials are read from --credentials, tumblr-credentials.json or credentials.json
in the working directory, ~/tumblr-credentials.json, the OS keychain (see 'login')
or the TUMBLR_CONSUMER_KEY, TUMBLR_CONSUMER_SECRET, TUMBLR_TOKEN and
TUMBLR_TOKEN_SECRET environment variables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("tumblr-repl %s\ntumblr api client %s\n", Version, tumblr.ClientVersion)
			return nil
		}
		return runConsole(cmd.Context())
	},
}

// Execute runs the CLI application.
// It executes the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show tumblr-repl and API client versions")
	rootCmd.Flags().StringVar(&credentialsPath, "credentials", "", "Path to a credentials file (relaxed JSON)")
	rootCmd.Flags().StringVar(&promptOverride, "prompt", "", "Override the console prompt")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Write debug logs to the state directory")
	rootCmd.Flags().BoolVar(&verifyTokens, "verify", false, "Check the tokens with userInfo before starting")
}

// loadConfig layers flags over the environment, the config file and defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if promptOverride != "" {
		cfg.Prompt = promptOverride
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// openLogger returns the diagnostics logger and its close function.
// Without --verbose nothing is logged.
func openLogger(cfg config.Config) (*logging.Logger, func() error) {
	noop := func() error { return nil }
	if !verbose {
		return logging.Nop(), noop
	}
	dir, err := xdg.StateDir()
	if err != nil {
		pterm.Warning.Printf("Logging disabled: %v\n", err)
		return logging.Nop(), noop
	}
	log, closeFn, err := logging.NewFileLogger(dir, cfg.LogLevel)
	if err != nil {
		pterm.Warning.Printf("Logging disabled: %v\n", err)
		return logging.Nop(), noop
	}
	return log, closeFn
}

func runConsole(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Println(logging.PresentError("load config", err))
		return errReported
	}
	color := !cfg.NoColor
	if !color {
		pterm.DisableColor()
	}

	log, closeLog := openLogger(cfg)
	defer func() { _ = closeLog() }()

	creds, src, err := credentials.NewResolver(credentialsPath).Resolve()
	if err != nil {
		log.Error().Str("location", src.String()).Str("error", logging.Mask(err.Error())).Msg("load credentials")
		credentials.ReportFailure(os.Stderr, src.String())
		return errReported
	}
	log.Info().Str("source", string(src.Kind)).Strs("missing", creds.Missing()).Msg("credentials loaded")
	credentials.Report(os.Stdout, os.Stderr, creds, src)

	fmt.Println(banner.Render(Version, tumblr.ClientVersion))

	client := tumblr.NewClient(creds, tumblr.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "tumblr-repl/" + Version,
		Logger:    log,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if verifyTokens {
		verify(ctx, client, cfg)
	}

	b := bridge.New(client, bridge.Options{
		Config: bridge.DefaultConfig(),
		Color:  color,
		Logger: log,
	})
	sh, err := shell.New(b, shell.Options{
		Prompt:      cfg.Prompt,
		HistoryFile: shell.DefaultHistoryFile(),
		Color:       color,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("start console: %w", err)
	}
	return sh.Run(ctx)
}
