// Package chart renders listening time series as terminal line charts.
package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/ademuri/listening-history/internal/analysis"
)

const (
	minWidth  = 20
	minHeight = 3
)

// Line plots a single series. It returns a placeholder when there is no data.
func Line(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return "No data available"
	}
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Hourly plots hours listened across the 24 hours of the day.
func Hourly(rows []analysis.HourTotal, width, height int) string {
	data := make([]float64, len(rows))
	for i, r := range rows {
		data[i] = r.Hours
	}
	return Line(data, width, height, "Hours listened by hour of day (0-23)")
}

// Monthly plots hours listened per month, oldest first.
func Monthly(rows []analysis.MonthTotal, width, height int) string {
	data := make([]float64, len(rows))
	for i, r := range rows {
		data[i] = r.Seconds / 3600
	}
	caption := "Hours listened per month"
	if len(rows) > 0 {
		caption = fmt.Sprintf("%s, %s to %s", caption, rows[0].Period, rows[len(rows)-1].Period)
	}
	return Line(data, width, height, caption)
}

// Weekday plots hours per weekday in the order given, labelling the x axis underneath.
func Weekday(rows []analysis.WeekdayTotal, width, height int) string {
	data := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		data[i] = r.Hours
		labels[i] = r.Day.String()[:3]
	}
	return Line(data, width, height, "Hours listened by weekday: "+strings.Join(labels, " "))
}
