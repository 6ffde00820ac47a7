// package formatter renders search results, history, and conversion reports
// for terminal display, and exports conversion reports to CSV.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zekog/hipotify-sub000/internal/convert"
	"github.com/zekog/hipotify-sub000/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// FormatResults renders a ranked result list as numbered lines with a kind
// badge and whatever secondary fields the item carries.
func FormatResults(items []models.Item) string {
	if len(items) == 0 {
		return styles.help.Render("No results found.")
	}

	var buf bytes.Buffer
	for i, item := range items {
		buf.WriteString(fmt.Sprintf("%2d. %s %s", i+1,
			styles.warn.Render("["+string(item.Kind)+"]"),
			styles.title.Render(item.Title)))

		var parts []string
		if item.ArtistName != "" {
			parts = append(parts, item.ArtistName)
		}
		if item.AlbumTitle != "" {
			parts = append(parts, item.AlbumTitle)
		}
		if item.Kind == models.KindTrack && item.Duration > 0 {
			parts = append(parts, formatDuration(item.Duration))
		}
		if len(parts) > 0 {
			buf.WriteString(styles.help.Render(" " + strings.Join(parts, " · ")))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatHistory renders the three history lists with per-kind headings.
func FormatHistory(snap models.HistorySnapshot) string {
	var buf bytes.Buffer

	section := func(heading string, items []models.Item) {
		if len(items) == 0 {
			return
		}
		buf.WriteString(styles.title.Render(heading) + "\n")
		buf.WriteString(FormatResults(items))
		buf.WriteString("\n")
	}

	section("Recent Tracks", snap.Tracks)
	section("Recent Artists", snap.Artists)
	section("Recent Albums", snap.Albums)

	if buf.Len() == 0 {
		return styles.help.Render("No listening history yet.")
	}
	return buf.String()
}

// FormatConversionReport renders per-track outcomes followed by the summary.
func FormatConversionReport(results []models.ConversionResult, summary convert.Summary) string {
	var buf bytes.Buffer

	for i, res := range results {
		switch {
		case res.Matched != nil:
			buf.WriteString(fmt.Sprintf("%2d. %s %s - %s\n", i+1,
				styles.ok.Render("✓"), res.Matched.ArtistName, res.Matched.Title))
		case res.Err != "":
			buf.WriteString(fmt.Sprintf("%2d. %s %s - %s (%s)\n", i+1,
				styles.err.Render("✗"), res.Source.Artist, res.Source.Title, res.Err))
		default:
			buf.WriteString(fmt.Sprintf("%2d. %s %s - %s\n", i+1,
				styles.warn.Render("-"), res.Source.Artist, res.Source.Title))
		}
	}

	buf.WriteString(fmt.Sprintf("\n%s %d/%d matched (%.1f%%)",
		styles.title.Render("Conversion complete:"),
		summary.Matched, summary.Total, summary.MatchRate))
	if summary.Skipped > 0 {
		buf.WriteString(styles.warn.Render(fmt.Sprintf(" · %d skipped", summary.Skipped)))
	}
	buf.WriteString("\n")

	return buf.String()
}

// ExportReportCSV converts conversion results to CSV with columns:
// Source Title, Source Artist, Source Album, Status, Matched ID, Matched Title, Matched Artist
func ExportReportCSV(results []models.ConversionResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Source Title", "Source Artist", "Source Album", "Status", "Matched ID", "Matched Title", "Matched Artist"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, res := range results {
		record := []string{res.Source.Title, res.Source.Artist, res.Source.Album}
		switch {
		case res.Matched != nil:
			record = append(record, "matched", res.Matched.ID, res.Matched.Title, res.Matched.ArtistName)
		case res.Err != "":
			record = append(record, res.Err, "", "", "")
		default:
			record = append(record, "skipped", "", "", "")
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteReportCSV exports a conversion report to the given path.
//
// Defaults to {summary.ID}_report.csv when path is empty.
func WriteReportCSV(results []models.ConversionResult, summary convert.Summary, path string) (string, error) {
	if path == "" {
		path = summary.ID + "_report.csv"
	}

	csvData, err := ExportReportCSV(results)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}

func formatDuration(seconds int) string {
	return strconv.Itoa(seconds/60) + ":" + fmt.Sprintf("%02d", seconds%60)
}
