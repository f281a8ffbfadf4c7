// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// NewCheckCatalogsCmd creates the check-catalogs subcommand.
func NewCheckCatalogsCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-catalogs",
		Short: "Validate the message catalogs without starting a session",
		Long: `Loads every catalog from --catalog-dir (or the built-in set) and
checks it against the catalog schema. Exits with code 0 on success,
non-zero on failure.

Useful in CI pipelines after editing translations:
  holologin check-catalogs --catalog-dir ./locales`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckCatalogs(cmd, *configFile)
		},
	}
}

func runCheckCatalogs(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(cmd, configFile)
	if err != nil {
		return err
	}

	bundle, err := loadBundle(cfg.CatalogDir)
	if err != nil {
		return err
	}

	for _, locale := range bundle.Locales() {
		cat, err := bundle.Catalog(language.MustParse(locale))
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d messages (version %s)\n", locale, cat.Len(), cat.Version())
	}
	cmd.Printf("all %d catalogs valid\n", len(bundle.Locales()))
	return nil
}
