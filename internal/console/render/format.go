// Package render turns controller snapshots into terminal text: a header,
// a pagination line, the record table and the detail panel.
package render

import (
	"html"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Missing stands in for any absent value.
const Missing = "-"

// DateLayout is how timestamps are shown.
const DateLayout = "2006-01-02 15:04"

var strict = bluemonday.StrictPolicy()

// Clean strips markup and control characters from stored free text so it
// cannot restyle or move the terminal cursor.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(strict.Sanitize(s))
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Or returns the cleaned s, or Missing when it is empty.
func Or(s string) string {
	if s = Clean(s); s == "" {
		return Missing
	}
	return s
}

// List joins the cleaned non-empty values with ", ".
func List(vs []string) string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = Clean(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return Missing
	}
	return strings.Join(out, ", ")
}

// Phone joins the non-empty phone parts with "-".
func Phone(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Clean(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return Missing
	}
	return strings.Join(out, "-")
}

// Date formats t in local time.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Missing
	}
	return t.Local().Format(DateLayout)
}

// Truncate shortens s to n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
