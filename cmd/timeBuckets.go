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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/history"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly [from] [to (optional)]",
	Short: "Hours listened for each hour of the day",
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return HourlyAnalyzer{} }),
}

var weekdayCalendarOrder bool
var weekdayCmd = &cobra.Command{
	Use:   "weekday [from] [to (optional)]",
	Short: "Hours listened for each day of the week",
	Long: `Days are listed alphabetically by name.
Pass --calendar for Monday to Sunday.`,
	Args: cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &WeekdayAnalyzer{CalendarOrder: weekdayCalendarOrder}
	}),
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly [from] [to (optional)]",
	Short: "Listening time per calendar month",
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return MonthlyAnalyzer{} }),
}

var dayTimeCmd = &cobra.Command{
	Use:   "day-time [from] [to (optional)]",
	Short: "Hours listened by weekday and time of day",
	Long:  `Night is 00-06, Morning 06-12, Afternoon 12-18 and Evening 18-24.`,
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return DayTimeAnalyzer{} }),
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap [from] [to (optional)]",
	Short: "Seconds listened by weekday and hour",
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return HeatmapAnalyzer{} }),
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
	rootCmd.AddCommand(weekdayCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(dayTimeCmd)
	rootCmd.AddCommand(heatmapCmd)

	weekdayCmd.Flags().BoolVar(&weekdayCalendarOrder, "calendar", false, "order days Monday to Sunday")
}

type HourlyAnalyzer struct{}

func (HourlyAnalyzer) GetName() string {
	return "Hourly listening"
}

func (HourlyAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	a.results = [][]string{{"Hour", "Hours"}}
	for _, h := range analysis.HourlyListening(ds) {
		a.results = append(a.results, []string{fmt.Sprintf("%02d", h.Hour), formatHours(h.Hours)})
	}
	return
}

type WeekdayAnalyzer struct {
	CalendarOrder bool
}

func (w *WeekdayAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["calendar"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing calendar=%q: %w", v, err)
		}
		w.CalendarOrder = b
	}
	return nil
}

func (w *WeekdayAnalyzer) GetName() string {
	return "Weekday trends"
}

func (w *WeekdayAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	rows := analysis.WeekdayTrends(ds)
	if w.CalendarOrder {
		rows = analysis.InCalendarOrder(rows)
	}
	a.results = [][]string{{"Day", "Hours"}}
	for _, d := range rows {
		a.results = append(a.results, []string{d.Day.String(), formatHours(d.Hours)})
	}
	return
}

type MonthlyAnalyzer struct{}

func (MonthlyAnalyzer) GetName() string {
	return "Monthly trends"
}

func (MonthlyAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	a.results = [][]string{{"Month", "Seconds", "Hours"}}
	for _, m := range analysis.MonthlyTrends(ds) {
		a.results = append(a.results, []string{m.Period.String(), formatSeconds(m.Seconds), formatHours(m.Seconds / 3600)})
	}
	return
}

type DayTimeAnalyzer struct{}

func (DayTimeAnalyzer) GetName() string {
	return "Hours by day and time"
}

func (DayTimeAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	header := []string{"Day"}
	for _, t := range analysis.TimesOfDay {
		header = append(header, t.String())
	}
	a.results = [][]string{header}
	for _, row := range analysis.HoursByDayAndTime(ds) {
		line := []string{row.Day.String()}
		for _, h := range row.Hours {
			line = append(line, formatHours(h))
		}
		a.results = append(a.results, line)
	}
	return
}

type HeatmapAnalyzer struct{}

func (HeatmapAnalyzer) GetName() string {
	return "Day and hour heatmap"
}

func (HeatmapAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	header := []string{"Day"}
	for h := 0; h < 24; h++ {
		header = append(header, fmt.Sprintf("%02d", h))
	}
	a.results = [][]string{header}
	for _, row := range analysis.DayHourHeatmap(ds) {
		line := []string{row.Day.String()[:3]}
		for _, s := range row.Seconds {
			line = append(line, formatSeconds(s))
		}
		a.results = append(a.results, line)
	}
	return
}
