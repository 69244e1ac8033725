package student

import (
	"sort"
	"strings"
	"time"
)

// checkInLayouts are the timestamp formats check-ins are written in by the various kiosks.
var checkInLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan 02 2006 15:04:05 GMT-0700", // Date.toString()
	"1/2/2006, 3:04:05 PM",              // en-US toLocaleString()
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseCheckIn parses a check-in timestamp. Layouts without a zone are read in loc.
func ParseCheckIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	// drop the "(Zone Name)" suffix of Date.toString()
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range checkInLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByCheckIn sorts records in place, oldest check-in first.
// The sort is stable; records with unparseable check-ins go last.
func SortByCheckIn(records []Record, loc *time.Location) {
	type key struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]key, len(records))
	keyOf := func(r Record) key {
		k, found := keys[r.Data.CheckIn]
		if !found {
			t, ok := ParseCheckIn(r.Data.CheckIn, loc)
			k = key{t: t, ok: ok}
			keys[r.Data.CheckIn] = k
		}
		return k
	}
	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := keyOf(records[i]), keyOf(records[j])
		if ki.ok != kj.ok {
			return ki.ok
		}
		if !ki.ok {
			return false
		}
		return ki.t.Before(kj.t)
	})
}
