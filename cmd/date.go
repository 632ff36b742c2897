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
	"regexp"
	"time"
)

// ParsedDate is a date string together with the precision it was written at.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

var datePatterns = []struct {
	pattern *regexp.Regexp
	layout  string
	name    string
	set     func(*ParsedDate)
}{
	{regexp.MustCompile(`^\d{4}$`), "2006", "year", func(d *ParsedDate) { d.Year = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", "month", func(d *ParsedDate) { d.Month = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", "day", func(d *ParsedDate) { d.Day = true }},
}

// parseDateRangeFromArgs turns zero, one or two date arguments into a [start, end) range.
// With no arguments both times are zero, meaning the whole history.
func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:

	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected at most two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	end = endParsed.Date

	if !end.After(start) {
		err = fmt.Errorf("End date %q must be after start date %q", endString, startString)
	}
	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	for _, p := range datePatterns {
		if !p.pattern.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(p.layout, ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as %s: %w", p.name, err)
			return
		}
		p.set(&date)
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}

func formatRange(start, end time.Time) string {
	const dateFormat = "2006-01-02"
	switch {
	case start.IsZero() && end.IsZero():
		return "all time"
	case end.IsZero():
		return "from " + start.Format(dateFormat)
	}
	return fmt.Sprintf("%s to %s", start.Format(dateFormat), end.Format(dateFormat))
}
