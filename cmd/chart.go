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

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/chart"
)

var (
	chartWidth    int
	chartHeight   int
	chartCalendar bool
)

var chartCmd = &cobra.Command{
	Use:       "chart <hourly|weekday|monthly> [from] [to (optional)]",
	Short:     "Draws a listening time series in the terminal",
	Args:      cobra.RangeArgs(1, 3),
	ValidArgs: []string{"hourly", "weekday", "monthly"},
	Run: func(cmd *cobra.Command, args []string) {
		err := drawChart(cmd.Context(), cmd.OutOrStdout(), dataSourceFromConfig(), args[0], args[1:])
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().IntVar(&chartWidth, "width", 60, "chart width in columns")
	chartCmd.Flags().IntVar(&chartHeight, "height", 12, "chart height in rows")
	chartCmd.Flags().BoolVar(&chartCalendar, "calendar", false, "order weekdays Monday to Sunday")
}

func drawChart(ctx context.Context, out io.Writer, source DataSource, kind string, args []string) error {
	switch kind {
	case "hourly", "weekday", "monthly":
	default:
		return fmt.Errorf("Unknown chart %q: expected hourly, weekday or monthly", kind)
	}

	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	ds, err := source.Load(ctx, start, end)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	var graph string
	switch kind {
	case "hourly":
		graph = chart.Hourly(analysis.HourlyListening(ds), chartWidth, chartHeight)
	case "weekday":
		rows := analysis.WeekdayTrends(ds)
		if chartCalendar {
			rows = analysis.InCalendarOrder(rows)
		}
		graph = chart.Weekday(rows, chartWidth, chartHeight)
	case "monthly":
		graph = chart.Monthly(analysis.MonthlyTrends(ds), chartWidth, chartHeight)
	}

	fmt.Fprintln(out, graph)
	return nil
}
