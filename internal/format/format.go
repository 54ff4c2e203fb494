// Package format renders numbers and dates the way the page shows them.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// Count renders n as a grouped integer, e.g. 12,345.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Timestamp renders t as "18 أكتوبر 2026، 09:05" in t's location.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s، %02d:%02d", Date(t), t.Hour(), t.Minute())
}

// Date renders the calendar day of t as "18 أكتوبر 2026".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
}

// ISODate renders an ISO YYYY-MM-DD string with Date, returning the input
// unchanged when it does not parse.
func ISODate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return Date(t)
}

// Ago renders the distance between t and now, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
