/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-history/internal/fetch"
	"github.com/ademuri/listening-history/internal/history"
	"github.com/ademuri/listening-history/internal/logger"
	"github.com/ademuri/listening-history/internal/store"
)

type ImportConfig struct {
	DbPath  string
	Sources []string
}

var importCmd = &cobra.Command{
	Use:   "import <file or URL...>",
	Short: "Stores streaming history in the local database",
	Long: `Loads CSV or Spotify JSON exports (files or http(s) URLs) into a local SQLite
database, which the other commands read when --input isn't given. Importing the same
plays twice is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := ImportConfig{
			DbPath:  viper.GetString("database"),
			Sources: args,
		}
		err := importHistory(cmd.Context(), cmd.OutOrStdout(), config)
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importHistory(ctx context.Context, out io.Writer, config ImportConfig) error {
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	latest, err := db.GetLatestPlay()
	if err != nil {
		return err
	}
	if !latest.IsZero() {
		logger.Info("existing history", "latest", latest.Format("2006-01-02 15:04"))
	}

	total := 0
	for _, source := range config.Sources {
		var ds history.Dataset
		if fetch.IsRemote(source) {
			ds, err = fetch.Dataset(ctx, source, fetch.Config{})
		} else {
			ds, err = history.LoadFile(source)
		}
		if err != nil {
			return fmt.Errorf("importing %s: %w", source, err)
		}

		added, err := db.ImportPlays(source, ds.Plays())
		if err != nil {
			return fmt.Errorf("importing %s: %w", source, err)
		}
		fmt.Fprintf(out, "%s: %d plays read, %d new\n", source, ds.Len(), added)
		total += added
	}

	fmt.Fprintf(out, "Imported %d new plays\n", total)
	return nil
}
