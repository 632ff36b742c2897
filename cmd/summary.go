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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/history"
)

var (
	limitArtists int
	limitTracks  int
)

var summaryCmd = &cobra.Command{
	Use:   "summary [from] [to (optional)]",
	Short: "Generates a textual summary of listening habits",
	Long:  `Prints headline numbers, top artists and top songs over the specified period.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: analyserCommand(func() Analyser {
		return &SummaryAnalyzer{Artists: limitArtists, Tracks: limitTracks}
	}),
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&limitArtists, "artists", 10, "Number of top artists to show")
	summaryCmd.Flags().IntVar(&limitTracks, "tracks", 10, "Number of top tracks to show")
}

type SummaryAnalyzer struct {
	Artists int
	Tracks  int
}

func (s *SummaryAnalyzer) GetName() string {
	return "Listening summary"
}

func (s *SummaryAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	var sb strings.Builder
	if err = printSummary(&sb, ds, s.Artists, s.Tracks); err != nil {
		return
	}
	a.BodyOverride = sb.String()
	return
}

func printSummary(out io.Writer, ds history.Dataset, artists, tracks int) error {
	s := analysis.Summarize(ds)
	fmt.Fprintf(out, "Total plays: %d\n", s.Plays)
	if s.Plays == 0 {
		return nil
	}

	fmt.Fprintf(out, "Period: %s to %s\n", s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"))
	fmt.Fprintf(out, "Total hours: %s\n", formatHours(s.TotalHours))
	fmt.Fprintf(out, "Distinct artists: %d\n", s.DistinctArtists)
	fmt.Fprintf(out, "Distinct tracks: %d\n", s.DistinctTracks)

	avg, err := analysis.AverageSessionDuration(ds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Average session: %.1f seconds\n", avg)

	streak, err := analysis.LongestListeningStreak(ds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Longest streak: %d days\n\n", streak)

	if artists > 0 {
		fmt.Fprintf(out, "## Top %d Artists\n", artists)
		for i, a := range analysis.TopArtists(ds, artists) {
			fmt.Fprintf(out, "%d. %s (%d)\n", i+1, a.Name, a.Count)
		}
		fmt.Fprintln(out)
	}

	if tracks > 0 {
		fmt.Fprintf(out, "## Top %d Songs\n", tracks)
		for i, t := range analysis.TopSongs(ds, tracks) {
			fmt.Fprintf(out, "%d. %s (%d)\n", i+1, t.Name, t.Count)
		}
		fmt.Fprintln(out)
	}

	return nil
}

// exitOnError prints err and exits. Empty datasets get a hint instead of a bare error.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, history.ErrEmptyDataset) {
		fmt.Println("No plays found for that period.")
	} else {
		fmt.Println(err)
	}
	os.Exit(1)
}
