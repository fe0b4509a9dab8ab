package sources

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"
)

const calendarDateLayout = "2006-01-02"

func dateFromSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(calendarDateLayout)
}

// digits keeps only the decimal digits of s, "#1,234 (global)" → 1234.
func digits(s string) int {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// lenientInt reads numbers that upstreams send either as JSON numbers or as
// strings; anything unreadable is zero.
func lenientInt(v any) int {
	if s, ok := v.(string); ok {
		return digits(s)
	}
	return cast.ToInt(v)
}
