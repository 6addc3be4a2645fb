package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Duration renders a minute count the way flight legs and layovers are
// displayed: "2 hr 10 min", "1 hr", "45 min". It accepts integer and float
// kinds, json.Number and numeric strings (surrounding whitespace allowed).
// Nil, negative and non-numeric input yield "". Zero yields "0 min".
func Duration(v any) string {
	minutes, ok := toMinutes(v)
	if !ok || minutes < 0 {
		return ""
	}
	if minutes == 0 {
		return "0 min"
	}

	hours := minutes / 60
	rem := minutes % 60

	switch {
	case hours > 0 && rem > 0:
		return fmt.Sprintf("%d hr %d min", hours, rem)
	case hours > 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d min", rem)
	}
}

func toMinutes(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		return parseMinutes(n.String())
	case string:
		return parseMinutes(n)
	case *int:
		if n == nil {
			return 0, false
		}
		return *n, true
	default:
		return 0, false
	}
}

func parseMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return fromFloat(f)
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
