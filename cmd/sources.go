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
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-history/internal/store"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Lists the files and URLs imported into the database",
	Run: func(cmd *cobra.Command, args []string) {
		err := listSources(cmd.OutOrStdout(), viper.GetString("database"))
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func listSources(out io.Writer, dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("Database %s doesn't exist - run import first", dbPath)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sources, err := db.Sources()
	if err != nil {
		return fmt.Errorf("query sources: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tIMPORTED\tPLAYS")
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.Name, s.Imported.Format("2006-01-02 15:04"), s.Plays)
	}
	return w.Flush()
}
