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
	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/history"
)

var mostPlayedNumber int
var mostPlayedCmd = &cobra.Command{
	Use:   "most-played [from] [to (optional)]",
	Short: "Gets the songs with the most total listening time",
	Long:  `Unlike top-songs, ranks by hours listened rather than by number of plays.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &MostPlayedAnalyzer{Config: AnalyserConfig{mostPlayedNumber}}
	}),
}

func init() {
	rootCmd.AddCommand(mostPlayedCmd)

	mostPlayedCmd.Flags().IntVarP(&mostPlayedNumber, "number", "n", 10, "number of results to return")
}

type MostPlayedAnalyzer struct {
	Config AnalyserConfig
}

func (m *MostPlayedAnalyzer) Configure(params map[string]string) error {
	return m.Config.Configure(params)
}

func (m *MostPlayedAnalyzer) GetName() string {
	return "Most played songs"
}

func (m *MostPlayedAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	a.results = [][]string{{"Song", "Total Hours Played"}}
	for _, song := range analysis.MostPlayedSongs(ds, m.Config.NumToReturn) {
		a.results = append(a.results, []string{song.Name, formatHours(song.Hours)})
	}
	return
}
