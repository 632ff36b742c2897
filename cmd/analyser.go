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
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ademuri/listening-history/internal/history"
)

type Analysis struct {
	results      [][]string
	summary      string
	BodyOverride string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int
}

type Analyser interface {
	GetResults(ds history.Dataset) (Analysis, error)

	GetName() string
}

type Configurable interface {
	Configure(params map[string]string) error
}

// Configure handles the "n" parameter shared by the top-N analysers.
func (c *AnalyserConfig) Configure(params map[string]string) error {
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing n=%q: %w", v, err)
		}
		c.NumToReturn = n
	}
	return nil
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if a.BodyOverride != "" {
		fmt.Fprintln(out, a.BodyOverride)
	} else if len(a.results) > 0 {
		table := tablewriter.NewWriter(out)
		table.Header(a.results[0])
		for _, row := range a.results[1:] {
			if err := table.Append(row); err != nil {
				return fmt.Sprintf("Error rendering table: %v", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 0, 64)
}

// runAnalyser loads the dataset for the date range in args and prints a's results to out.
func runAnalyser(ctx context.Context, out io.Writer, source DataSource, a Analyser, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	ds, err := source.Load(ctx, start, end)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	analysis, err := a.GetResults(ds)
	if err != nil {
		return fmt.Errorf("%s: %w", a.GetName(), err)
	}
	if analysis.summary == "" {
		analysis.summary = fmt.Sprintf("%s over %d plays, %s", a.GetName(), ds.Len(), formatRange(start, end))
	}
	fmt.Fprint(out, analysis)
	return nil
}

// analyserCommand builds the Run function shared by the query commands.
func analyserCommand(newAnalyser func() Analyser) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		err := runAnalyser(cmd.Context(), cmd.OutOrStdout(), dataSourceFromConfig(), newAnalyser(), args)
		exitOnError(err)
	}
}
