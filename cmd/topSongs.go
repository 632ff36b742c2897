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

var topSongsNumber int
var topSongsCmd = &cobra.Command{
	Use:   "top-songs [from] [to (optional)]",
	Short: "Gets the most played songs by play count",
	Args:  cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &TopSongsAnalyzer{Config: AnalyserConfig{topSongsNumber}}
	}),
}

func init() {
	rootCmd.AddCommand(topSongsCmd)

	topSongsCmd.Flags().IntVarP(&topSongsNumber, "number", "n", 10, "number of results to return")
}

type TopSongsAnalyzer struct {
	Config AnalyserConfig
}

func (t *TopSongsAnalyzer) Configure(params map[string]string) error {
	return t.Config.Configure(params)
}

func (t *TopSongsAnalyzer) GetName() string {
	return "Top songs"
}

func (t *TopSongsAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	a.results = [][]string{{"Song", "Play Count"}}
	for _, song := range analysis.TopSongs(ds, t.Config.NumToReturn) {
		a.results = append(a.results, []string{song.Name, strconv.FormatInt(song.Count, 10)})
	}
	return
}
