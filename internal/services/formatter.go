package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders n in human readable form: 999, 1.5K, 2.3M, 1.0B.
// Fractions are truncated before formatting.
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	v := math.Trunc(n)

	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

// FormatCount is FormatNumber for counters that arrive as strings.
// Anything that does not parse as a number yields "0".
func FormatCount(s string) string {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "0"
	}
	return FormatNumber(n)
}

// FormatDuration turns an ISO-8601 duration such as PT1H2M3S into 1:02:03.
// Without hours the result is M:SS.
func FormatDuration(iso string) string {
	rest := strings.TrimPrefix(iso, "PT")

	var hours, minutes, seconds int
	if before, after, ok := strings.Cut(rest, "H"); ok {
		hours = atoi(before)
		rest = after
	}
	if before, after, ok := strings.Cut(rest, "M"); ok {
		minutes = atoi(before)
		rest = after
	}
	if before, _, ok := strings.Cut(rest, "S"); ok {
		seconds = atoi(before)
	}

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// malformed components count as zero
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
