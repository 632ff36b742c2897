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

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from] [to (optional)]",
	Short: "Gets the most played artists",
	Long:  `Counts plays per artist. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'; with no dates the whole history is used.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &TopArtistsAnalyzer{Config: AnalyserConfig{topArtistsNumber}}
	}),
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t *TopArtistsAnalyzer) Configure(params map[string]string) error {
	return t.Config.Configure(params)
}

func (t *TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t *TopArtistsAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	a.results = [][]string{{"Artist", "Plays"}}
	for _, artist := range analysis.TopArtists(ds, t.Config.NumToReturn) {
		a.results = append(a.results, []string{artist.Name, strconv.FormatInt(artist.Count, 10)})
	}
	return
}
