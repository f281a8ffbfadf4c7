// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/holomush/holologin/internal/captcha"
	"github.com/holomush/holologin/internal/config"
	"github.com/holomush/holologin/internal/console"
	"github.com/holomush/holologin/internal/i18n"
	"github.com/holomush/holologin/internal/logging"
	"github.com/holomush/holologin/internal/observability"
	"github.com/holomush/holologin/internal/xdg"
	"github.com/holomush/holologin/pkg/errutil"
)

const serviceName = "holologin"

// NewRootCmd creates the root command for the holologin CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "holologin",
		Short: "Bilingual console login with captcha",
		Long: `holologin runs an interactive login session on the terminal.
Pick Vietnamese or English, enter a 10-digit account number and a
password, then type the captcha shown until it matches.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, configFile)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/holologin/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewCheckCatalogsCmd(&configFile))

	return cmd
}

// loadConfig reads the explicit --config file, or the XDG default if it
// exists, layered under any flags given on the command line.
func loadConfig(cmd *cobra.Command, configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(cmd.Flags(), configFile, true)
	}
	return config.Load(cmd.Flags(), xdg.DefaultConfigFile(), false)
}

// loadBundle loads catalogs from dir, or the built-in catalogs when dir is
// empty.
func loadBundle(dir string) (*i18n.Bundle, error) {
	if dir == "" {
		return i18n.LoadEmbedded()
	}
	return i18n.LoadFromFS(os.DirFS(dir))
}

// setupLogger builds the logger described by cfg. The returned closer is
// never nil.
func setupLogger(cfg *config.Config, version string) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	f, err := logging.OpenOutput(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return logging.Setup(serviceName, version, cfg.Log.Format, level, nil), func() {}, nil
	}
	// Nothing is left to log to once the file is closed.
	closer := func() { _ = f.Close() }
	return logging.Setup(serviceName, version, cfg.Log.Format, level, f), closer, nil
}

func runSession(cmd *cobra.Command, configFile string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, configFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg, cmd.Root().Version)
	if err != nil {
		return err
	}
	defer closeLog()

	bundle, err := loadBundle(cfg.CatalogDir)
	if err != nil {
		errutil.LogError(ctx, logger, "failed to load catalogs", err)
		return err
	}

	menuLocale, err := language.Parse(cfg.MenuLocale)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("menu_locale", cfg.MenuLocale).Wrapf(err, "parse menu locale")
	}

	recorder := observability.NewRecorder()
	ctrl, err := console.New(console.Options{
		In:              cmd.InOrStdin(),
		Out:             cmd.OutOrStdout(),
		ErrOut:          cmd.ErrOrStderr(),
		Bundle:          bundle,
		MenuLocale:      menuLocale,
		Captcha:         captcha.NewSeededGenerator(cfg.Captcha.Seed),
		MessageNewlines: cfg.Output.MessageNewlines,
		Metrics:         recorder.Metrics(),
		Logger:          logger,
	})
	if err != nil {
		errutil.LogError(ctx, logger, "failed to create console", err)
		return err
	}

	runErr := ctrl.Run(ctx)
	if runErr != nil {
		errutil.LogError(ctx, logger, "session ended with error", runErr)
	}

	if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		errutil.LogError(ctx, logger, "failed to write metrics", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
