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

	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/analysis"
	"github.com/ademuri/listening-history/internal/history"
)

var streakCmd = &cobra.Command{
	Use:   "streak [from] [to (optional)]",
	Short: "Longest run of consecutive days with at least one play",
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return StreakAnalyzer{} }),
}

var averageCmd = &cobra.Command{
	Use:   "average [from] [to (optional)]",
	Short: "Average listening time per play",
	Args:  cobra.RangeArgs(0, 2),
	Run:   analyserCommand(func() Analyser { return AverageAnalyzer{} }),
}

func init() {
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(averageCmd)
}

type StreakAnalyzer struct{}

func (StreakAnalyzer) GetName() string {
	return "Longest listening streak"
}

func (StreakAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	streak, err := analysis.LongestListeningStreak(ds)
	if err != nil {
		return
	}
	a.summary = fmt.Sprintf("Longest listening streak: %d days (%d listening days in total)", streak, len(analysis.ListeningDays(ds)))
	return
}

type AverageAnalyzer struct{}

func (AverageAnalyzer) GetName() string {
	return "Average session duration"
}

func (AverageAnalyzer) GetResults(ds history.Dataset) (a Analysis, err error) {
	avg, err := analysis.AverageSessionDuration(ds)
	if err != nil {
		return
	}
	a.summary = fmt.Sprintf("Average session duration: %.1f seconds (%.2f minutes) over %d plays", avg, avg/60, ds.Len())
	return
}
