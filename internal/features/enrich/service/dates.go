package service

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// excelEpoch is the zero day of spreadsheet serial dates. Day 1 is
// 1900-01-01; the 1899-12-30 base absorbs the fictitious 1900 leap day.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	serialMin = 1
	serialMax = 50000
)

// minAcceptedYear bounds parsed dates from below. Feeds older than this are
// out of scope, and a parse that lands before it is a misread, not a date.
const minAcceptedYear = 2020

var monthFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"01-02-2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006 15:04",
	time.RFC3339,
}

var dayFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2/1/2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006 15:04",
	time.RFC3339,
}

// yearAccepted bounds parsed dates to a plausible operational window.
// now+1 tolerates promised future delivery dates.
func yearAccepted(t time.Time, now time.Time) bool {
	return t.Year() >= minAcceptedYear && t.Year() <= now.Year()+1
}

// ParseDateCell parses a single cell as a textual date. The time component,
// when present, is dropped: everything downstream compares calendar days.
func ParseDateCell(raw string, dayFirst bool, now time.Time) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if !yearAccepted(t, now) {
			return nil, false
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day, true
	}
	return nil, false
}

// ParseSerialDate parses a cell as a spreadsheet serial day number.
// The serial must sit in a sane window and resolve to an accepted year;
// anything else is treated as a plain number, not a date.
func ParseSerialDate(raw string, now time.Time) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	serial, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, false
	}
	if serial < serialMin || serial > serialMax {
		return nil, false
	}
	t := excelEpoch.AddDate(0, 0, int(serial))
	if !yearAccepted(t, now) {
		return nil, false
	}
	return &t, true
}

// ParseDateColumn parses a whole column of raw cells. Textual parsing is
// tried first; only when it recognizes not a single value does the column
// fall back to serial interpretation. Per-cell fallback would let stray
// numeric cells in a textual column masquerade as dates.
func ParseDateColumn(values []string, dayFirst bool, now time.Time) []*time.Time {
	parsed := make([]*time.Time, len(values))
	valid := 0
	for i, raw := range values {
		if t, ok := ParseDateCell(raw, dayFirst, now); ok {
			parsed[i] = t
			valid++
		}
	}
	if valid > 0 {
		return parsed
	}

	for i, raw := range values {
		if t, ok := ParseSerialDate(raw, now); ok {
			parsed[i] = t
		}
	}
	return parsed
}
