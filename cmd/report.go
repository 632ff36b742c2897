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
	"gopkg.in/yaml.v3"

	"github.com/ademuri/listening-history/internal/analysis"
)

var reportCmd = &cobra.Command{
	Use:   "report [from] [to (optional)]",
	Short: "Generates a full listening report",
	Long:  `Runs every analysis over the period and writes the results as YAML.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		opts := analysis.ReportOptions{
			TopN:             viper.GetInt("report.top"),
			WeeklyTracks:     viper.GetInt("report.weekly_tracks"),
			MonthlyArtists:   viper.GetInt("report.monthly_artists"),
			CalendarWeekdays: viper.GetBool("report.calendar"),
		}
		err := runReport(cmd.Context(), cmd.OutOrStdout(), dataSourceFromConfig(), opts, args)
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Int("top", analysis.DefaultReportOptions.TopN, "Number of artists and songs in the top lists")
	viper.BindPFlag("report.top", reportCmd.Flags().Lookup("top"))

	reportCmd.Flags().Int("weekly-tracks", analysis.DefaultReportOptions.WeeklyTracks, "Number of tracks in the weekly breakdown")
	viper.BindPFlag("report.weekly_tracks", reportCmd.Flags().Lookup("weekly-tracks"))

	reportCmd.Flags().Int("monthly-artists", analysis.DefaultReportOptions.MonthlyArtists, "Number of artists in the monthly breakdown")
	viper.BindPFlag("report.monthly_artists", reportCmd.Flags().Lookup("monthly-artists"))

	reportCmd.Flags().Bool("calendar", false, "Order weekdays Monday to Sunday")
	viper.BindPFlag("report.calendar", reportCmd.Flags().Lookup("calendar"))
}

func runReport(ctx context.Context, out io.Writer, source DataSource, opts analysis.ReportOptions, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	ds, err := source.Load(ctx, start, end)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	report, err := analysis.GenerateReport(ds, opts)
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
