package publisher

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// RenderAlignedTable lays out headers/rows into fixed-width columns
// using display-width cell measurement, the same approach
// util_table.go uses for si's CLI tables. Each Formatter's full()
// output builds its run/target tables through this helper so the
// three families render identically.
func RenderAlignedTable(headers []string, rows [][]string, gutter int) []string {
	if len(headers) == 0 {
		return nil
	}
	if gutter < 1 {
		gutter = 1
	}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	sep := strings.Repeat(" ", gutter)
	out := make([]string, 0, len(rows)+1)
	out = append(out, renderTableRow(headers, widths, sep))
	for _, row := range rows {
		out = append(out, renderTableRow(row, widths, sep))
	}
	return out
}

func renderTableRow(row []string, widths []int, sep string) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = padRight(cell, width)
	}
	return strings.Join(cells, sep)
}

var ansiStripRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func displayWidth(s string) int {
	s = ansiStripRe.ReplaceAllString(s, "")
	width := 0
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		s = s[n:]
		if r == utf8.RuneError && n == 1 {
			width++
			continue
		}
		if isZeroWidthRune(r) {
			continue
		}
		width++
	}
	return width
}

func isZeroWidthRune(r rune) bool {
	switch {
	case r == 0:
		return true
	case r == 0x200b || r == 0x200c || r == 0x200d:
		return true
	case r >= 0xfe00 && r <= 0xfe0f:
		return true
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Cf, r)
}

func padRight(s string, width int) string {
	visible := displayWidth(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// ShortRunID truncates a run id to its first 8 characters for
// one-line summaries, falling back to the full id when it's already
// shorter than that.
func ShortRunID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatDuration renders a millisecond duration the way a person reads
// a build log: sub-second as "123ms", sub-minute as "4.2s", otherwise
// "2m15s".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", ms)
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - minutes*60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// FormatTimestamp renders an epoch-millisecond timestamp as RFC3339 in
// UTC, matching the teacher's time.Now().UTC().Format(time.RFC3339)
// convention used throughout its deploy history bookkeeping.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// StatusLabel renders a Status as a bracketed tag, e.g. "[succeeded]",
// for plain-text one-line summaries. The tag is not padded, so its width
// follows the status name.
func StatusLabel(s Status) string {
	return fmt.Sprintf("[%s]", string(s))
}
