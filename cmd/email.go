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
	"html"
	"io"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-history/internal/history"
	"github.com/ademuri/listening-history/internal/logger"
)

type SendEmailConfig struct {
	From       string
	To         string
	ReportName string
	Types      []string
	Params     []map[string]string
	DryRun     bool
	APIKey     string
	Period     string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <analysis_name...> [date] [date]",
	Short: "Sends an email report",
	Long: `Emails listening statistics to the specified address.
  <analysis_name> is one or more of: top-artists, top-songs, most-played, hourly, weekday,
  monthly, day-time, heatmap, weekly-tracks, artists-by-month, streak, average, summary.
  Optional date arguments can be provided at the end (e.g. '2023-01' or '2023-01 2023-06').
  If no dates are provided, the whole history is used.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		to := args[0]
		analysisTypes, dateArgs := splitDateArgs(args[1:])
		if len(analysisTypes) == 0 {
			exitOnError(fmt.Errorf("Error: No analysis types specified"))
		}

		params, _ := cmd.Flags().GetStringArray("params")
		structuredParams, err := parseParams(params, len(analysisTypes))
		exitOnError(err)

		start, end, err := parseDateRangeFromArgs(dateArgs)
		exitOnError(err)

		ds, err := dataSourceFromConfig().Load(cmd.Context(), start, end)
		exitOnError(err)

		config := SendEmailConfig{
			From:       viper.GetString("from"),
			To:         to,
			ReportName: viper.GetString("name"),
			Types:      analysisTypes,
			Params:     structuredParams,
			DryRun:     viper.GetBool("dry_run"),
			APIKey:     viper.GetString("sendgrid_api_key"),
			Period:     formatRange(start, end),
		}
		err = sendEmail(cmd.Context(), cmd.OutOrStdout(), config, ds)
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	emailCmd.Flags().String("from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	emailCmd.Flags().String("name", "", "Report name, appended to the subject")
	viper.BindPFlag("name", emailCmd.Flags().Lookup("name"))

	emailCmd.Flags().String("sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))

	emailCmd.Flags().BoolP("dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dry_run", emailCmd.Flags().Lookup("dry_run"))

	emailCmd.Flags().StringArray("params", nil, "Parameters for reports, matched by index (e.g. --params 'n=20')")
}

// splitDateArgs peels up to two trailing date strings off args.
func splitDateArgs(args []string) (rest []string, dates []string) {
	rest = args
	for i := 0; i < 2 && len(rest) > 0; i++ {
		last := rest[len(rest)-1]
		if _, err := parseSingleDatestring(last); err != nil {
			break
		}
		dates = append([]string{last}, dates...)
		rest = rest[:len(rest)-1]
	}
	return
}

func parseParams(params []string, numReports int) ([]map[string]string, error) {
	if len(params) > 0 && len(params) != numReports {
		return nil, fmt.Errorf("Number of --params flags (%d) must match number of reports (%d), or be 0", len(params), numReports)
	}

	structured := make([]map[string]string, numReports)
	for i, v := range params {
		pMap := make(map[string]string)
		if v != "" {
			for _, pair := range strings.Split(v, ",") {
				kv := strings.SplitN(pair, "=", 2)
				if len(kv) == 2 {
					pMap[kv[0]] = kv[1]
				}
			}
		}
		structured[i] = pMap
	}
	return structured, nil
}

func sendEmail(ctx context.Context, out io.Writer, config SendEmailConfig, ds history.Dataset) error {
	actions := make([]Analyser, 0, len(config.Types))
	for i, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return err
		}

		if i < len(config.Params) && len(config.Params[i]) > 0 {
			if configurable, ok := action.(Configurable); ok {
				if err := configurable.Configure(config.Params[i]); err != nil {
					return fmt.Errorf("configuring %s (index %d): %w", actionName, i, err)
				}
			}
		}

		actions = append(actions, action)
	}

	subject, body, err := generateEmailContent(config, actions, ds)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Fprintf(out, "Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}
	if config.APIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("listening-history", config.From)
	to := mail.NewEmail("", config.To)
	message := mail.NewSingleEmail(from, subject, to, subject, body)

	client := sendgrid.NewSendClient(config.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	if response.StatusCode/100 != 2 {
		return fmt.Errorf("sendEmail: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}
	logger.Info("sent email", "to", config.To, "subject", subject)
	return nil
}

func generateEmailContent(config SendEmailConfig, actions []Analyser, ds history.Dataset) (subject string, body string, err error) {
	var sb strings.Builder
	sb.WriteString(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`)
	for _, action := range actions {
		sb.WriteString("<div>\n")
		fmt.Fprintf(&sb, "<h2>%s, %s:</h2>\n", html.EscapeString(action.GetName()), html.EscapeString(config.Period))

		analysis, err := action.GetResults(ds)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", action.GetName(), err)
		}

		switch {
		case analysis.BodyOverride != "":
			fmt.Fprintf(&sb, "<pre>%s</pre>\n", html.EscapeString(analysis.BodyOverride))
		case len(analysis.results) > 1:
			sb.WriteString("<table>\n<thead>\n<tr>")
			for _, header := range analysis.results[0] {
				fmt.Fprintf(&sb, "<th>%s</th>", html.EscapeString(header))
			}
			sb.WriteString("</tr>\n</thead>\n<tbody>\n")
			for _, row := range analysis.results[1:] {
				sb.WriteString("<tr>")
				for _, column := range row {
					fmt.Fprintf(&sb, "<td>%s</td>", html.EscapeString(column))
				}
				sb.WriteString("</tr>\n")
			}
			sb.WriteString("</tbody>\n</table>\n")
		case analysis.summary == "":
			sb.WriteString("<div>No plays found.</div>\n")
		}
		fmt.Fprintf(&sb, "<div>%s</div>\n</div>\n", html.EscapeString(analysis.summary))
	}
	sb.WriteString("  </body>\n</html>\n")

	subjectSuffix := ""
	if len(config.ReportName) > 0 {
		subjectSuffix = ": " + config.ReportName
	}
	subject = fmt.Sprintf("Listening report, %s%s", config.Period, subjectSuffix)

	return subject, sb.String(), nil
}

func getActionFromName(actionName string) (Analyser, error) {
	// Pointers required for Configure.
	actionMap := map[string]Analyser{
		"top-artists":      &TopArtistsAnalyzer{Config: AnalyserConfig{20}},
		"top-songs":        &TopSongsAnalyzer{Config: AnalyserConfig{20}},
		"most-played":      &MostPlayedAnalyzer{Config: AnalyserConfig{10}},
		"hourly":           &HourlyAnalyzer{},
		"weekday":          &WeekdayAnalyzer{},
		"monthly":          &MonthlyAnalyzer{},
		"day-time":         &DayTimeAnalyzer{},
		"heatmap":          &HeatmapAnalyzer{},
		"weekly-tracks":    &WeeklyTracksAnalyzer{Config: AnalyserConfig{5}},
		"artists-by-month": &ArtistsByMonthAnalyzer{Config: AnalyserConfig{10}},
		"streak":           &StreakAnalyzer{},
		"average":          &AverageAnalyzer{},
		"summary":          &SummaryAnalyzer{Artists: 10, Tracks: 10},
	}

	action, ok := actionMap[actionName]
	if !ok {
		return nil, fmt.Errorf("Invalid analysis_name: %s", actionName)
	}

	return action, nil
}
