package filterspec

import (
	"encoding/json"
	"time"
)

// timeNow is the clock for all relative date math. Tests pin it.
var timeNow = time.Now

const dateLayout = "2006-01-02"

// fallbackLayouts are tried in order after RFC 3339; first match wins.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
}

// ParseDate coerces heterogeneous date representations to a timestamp:
// native time values pass through, strings try RFC 3339 then the fixed
// fallback layouts, numbers are epoch seconds. Returns nil when nothing
// matches; callers drop the affected predicate instead of failing.
func ParseDate(value interface{}) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
		for _, layout := range fallbackLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
		return nil
	case float64:
		t := time.Unix(int64(v), 0)
		return &t
	case int:
		t := time.Unix(int64(v), 0)
		return &t
	case int64:
		t := time.Unix(v, 0)
		return &t
	case json.Number:
		if n, err := v.Int64(); err == nil {
			t := time.Unix(n, 0)
			return &t
		}
		return nil
	}
	return nil
}

// RelativeRange describes a previous/current/next window.
type RelativeRange struct {
	PeriodType   string
	Count        int
	IncludeToday bool
}

// parseRelativeRange reads the descriptor object out of a rule value.
// The bare {periodType, count, includeToday} form is canonical; the
// legacy {"relativeDateRange": {...}} wrapper is unwrapped for older
// clients.
func parseRelativeRange(value interface{}) *RelativeRange {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if wrapped, ok := obj["relativeDateRange"].(map[string]interface{}); ok {
		obj = wrapped
	}

	rng := &RelativeRange{PeriodType: "day", Count: 1}
	if pt, ok := obj["periodType"].(string); ok && pt != "" {
		rng.PeriodType = pt
	}
	switch c := obj["count"].(type) {
	case float64:
		rng.Count = int(c)
	case int:
		rng.Count = c
	}
	if rng.Count < 1 {
		rng.Count = 1
	}
	if inc, ok := obj["includeToday"].(bool); ok {
		rng.IncludeToday = inc
	}
	return rng
}

// periodDays returns the fixed day count of a period type. Outside of
// "current", week/month/year are deliberate approximations (7/30/365),
// a contract surface rather than calendar math.
func periodDays(periodType string) int {
	switch periodType {
	case "day":
		return 1
	case "week":
		return 7
	case "month":
		return 30
	case "year":
		return 365
	}
	return 0
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// monthBounds returns the first and last calendar day of t's month.
// AddDate handles the December to January rollover.
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// previousMonthBounds returns the first and last day of the month
// before t's.
func previousMonthBounds(t time.Time) (time.Time, time.Time) {
	firstOfThis := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := firstOfThis.AddDate(0, 0, -1)
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, last
}
