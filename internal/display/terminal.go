// Package display provides terminal output formatting for contentmix.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

const (
	separator      = " • "
	maxBarWidth    = 40
	descriptionLen = 120
)

// TerminalFormatter formats search results for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatRecord formats a single video for display.
func (f *TerminalFormatter) FormatRecord(r youtube.VideoRecord) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("[YOUTUBE] %s", r.Title))
	lines = append(lines, fmt.Sprintf("  by %s%s%s", r.ChannelName, separator, f.FormatTimestamp(r.PublishDate)))

	if r.Description != "" {
		lines = append(lines, "  "+f.TruncateText(r.Description, descriptionLen))
	}

	lines = append(lines, "  "+r.VideoURL)

	return strings.Join(lines, "\n") + "\n"
}

// FormatPage formats the visible gallery page and its position.
func (f *TerminalFormatter) FormatPage(view pagination.PageView, records []youtube.VideoRecord) string {
	if !view.ShowControls() || len(records) == 0 {
		return "No videos to display.\n"
	}

	formatted := make([]string, 0, len(records))
	for _, r := range records {
		formatted = append(formatted, f.FormatRecord(r))
	}

	return strings.Join(formatted, "\n---\n\n") +
		fmt.Sprintf("\nPage %d of %d\n", view.PageNumber, view.TotalPages)
}

// FormatSummary formats the upload total and a per-day bar chart.
func (f *TerminalFormatter) FormatSummary(s aggregator.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Video Uploads: %d\n", s.Total)
	if len(s.Daily) == 0 {
		return b.String()
	}

	zone := "UTC"
	if s.Location != nil {
		zone = s.Daily[0].Date.Format("MST")
	}
	fmt.Fprintf(&b, "\nUploads per Day (%s)\n", zone)

	highest := s.MaxCount()
	for _, d := range s.Daily {
		width := d.Count * maxBarWidth / highest
		if width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%s  %-*s %d (%+d)\n",
			d.Date.Format("2006-01-02"), maxBarWidth, strings.Repeat("█", width), d.Count, d.DeltaFromPreviousDay)
	}

	return b.String()
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
// Newlines are folded into spaces so a description stays on one line.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
