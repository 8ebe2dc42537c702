package domain

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cast"
	"golang.org/x/text/unicode/norm"
)

// SLATable holds per-city first-attempt targets, keyed by normalized city name.
type SLATable struct {
	// Targets maps NormalizeCityKey(city) to the contracted target days.
	Targets map[string]int `json:"targets"`
}

// NormalizeCityKey produces the join key for a city name: NFKC-folded,
// trimmed and lowercased. City names arrive in mixed Arabic/Latin spellings
// and with stray whitespace; lookups must not care.
func NormalizeCityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(city)))
}

// TargetFor returns the target days for a city, or false when the city is
// not in the table. An unmapped city is never an error; the shipment simply
// has no SLA data.
func (s *SLATable) TargetFor(city string) (int, bool) {
	if s == nil {
		return 0, false
	}
	days, ok := s.Targets[NormalizeCityKey(city)]
	return days, ok
}

// Len returns the number of cities in the table.
func (s *SLATable) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Targets)
}

// Fingerprint returns a content hash of the table for memoization keys.
// The hash is order-independent.
func (s *SLATable) Fingerprint() string {
	if s == nil || len(s.Targets) == 0 {
		return "none"
	}
	var sum uint64
	for city, days := range s.Targets {
		h := xxhash.New()
		h.WriteString(city)
		h.WriteString("=")
		h.WriteString(cast.ToString(days))
		sum ^= h.Sum64()
	}
	return cast.ToString(sum)
}

// BuildSLATable extracts (city, target days) pairs from a raw table.
//
// The city and days columns are found by keyword search, falling back to the
// first two columns. Rows with a blank city or a non-positive target are
// dropped. Duplicate cities resolve last-wins. Returns nil when no valid row
// survives cleaning; the caller decides whether that is a structural failure.
func BuildSLATable(t *RawTable) *SLATable {
	if t.IsEmpty() {
		return nil
	}

	cityCol, daysCol := -1, -1
	cityKeywords := []string{"city", "مدينة", "destination", "مدن", "cities", "location", "موقع"}
	daysKeywords := []string{"day", "يوم", "أيام", "sla", "target", "هدف", "ايام"}

	for col, header := range t.Headers {
		if cityCol < 0 && headerMatches(header, cityKeywords) {
			cityCol = col
			continue
		}
		if daysCol < 0 && headerMatches(header, daysKeywords) {
			daysCol = col
		}
	}

	if cityCol < 0 || daysCol < 0 {
		if len(t.Headers) < 2 {
			return nil
		}
		cityCol, daysCol = 0, 1
	}

	targets := make(map[string]int)
	for row := range t.Rows {
		city := strings.TrimSpace(t.Cell(row, cityCol))
		if city == "" {
			continue
		}
		raw, err := cast.ToFloat64E(strings.TrimSpace(t.Cell(row, daysCol)))
		if err != nil || raw <= 0 {
			continue
		}
		targets[NormalizeCityKey(city)] = int(raw)
	}

	if len(targets) == 0 {
		return nil
	}
	return &SLATable{Targets: targets}
}
