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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/history"
)

var weeklyTracksNumber int
var weeklyTracksCmd = &cobra.Command{
	Use:   "weekly-tracks [from] [to (optional)]",
	Short: "Weekly listening time for the most played tracks",
	Long: `Picks the tracks with the most plays and shows seconds listened per week
(weeks end on Sunday). Blank cells mean the track wasn't played that week.`,
	Args: cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &WeeklyTracksAnalyzer{Config: AnalyserConfig{weeklyTracksNumber}}
	}),
}

var artistsByMonthNumber int
var artistsByMonthCmd = &cobra.Command{
	Use:   "artists-by-month [from] [to (optional)]",
	Short: "Monthly play counts for the most played artists",
	Long: `Rows are month names, so the same month in different years is combined.
Narrow the range with date arguments to look at a single year.`,
	Args: cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &ArtistsByMonthAnalyzer{Config: AnalyserConfig{artistsByMonthNumber}}
	}),
}

func init() {
	rootCmd.AddCommand(weeklyTracksCmd)
	rootCmd.AddCommand(artistsByMonthCmd)

	weeklyTracksCmd.Flags().IntVarP(&weeklyTracksNumber, "number", "n", 5, "number of tracks")
	artistsByMonthCmd.Flags().IntVarP(&artistsByMonthNumber, "number", "n", 10, "number of artists")
}

type WeeklyTracksAnalyzer struct {
	Config AnalyserConfig
}

func (w *WeeklyTracksAnalyzer) Configure(params map[string]string) error {
	return w.Config.Configure(params)
}

func (w *WeeklyTracksAnalyzer) GetName() string {
	return "Weekly top tracks"
}

func (w *WeeklyTracksAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	weekly := analysis.WeeklyTopTracks(ds, w.Config.NumToReturn)
	a.results = [][]string{append([]string{"Week ending"}, weekly.Tracks...)}
	for _, week := range weekly.Weeks {
		line := []string{week.WeekEnding.Format("2006-01-02")}
		for _, s := range week.Seconds {
			if s == nil {
				line = append(line, "")
			} else {
				line = append(line, formatSeconds(*s))
			}
		}
		a.results = append(a.results, line)
	}
	return
}

type ArtistsByMonthAnalyzer struct {
	Config AnalyserConfig
}

func (m *ArtistsByMonthAnalyzer) Configure(params map[string]string) error {
	return m.Config.Configure(params)
}

func (m *ArtistsByMonthAnalyzer) GetName() string {
	return "Top artists by month"
}

func (m *ArtistsByMonthAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	byMonth := analysis.TopArtistsByMonth(ds, m.Config.NumToReturn)
	a.results = [][]string{append([]string{"Month"}, byMonth.Artists...)}
	for _, row := range byMonth.Months {
		line := []string{row.Month.String()}
		for _, c := range row.Counts {
			line = append(line, strconv.FormatInt(c, 10))
		}
		a.results = append(a.results, line)
	}
	return
}
