// Package formatting provides human-readable byte size formatting and parsing.
package formatting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB"}

var sizePattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes renders a byte count using base-1024 units, e.g. "2.5 MB".
// Negative precision is clamped to zero.
func FormatBytes(n int64, precision int) string {
	if precision < 0 {
		precision = 0
	}

	size := float64(n)
	idx := 0
	for size >= 1024 && idx < len(units)-1 {
		size /= 1024
		idx++
	}

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[idx]
}

// ParseBytes parses a human-readable size string ("20MB", "512 kb", "1024")
// into a byte count. Matching is case-insensitive; a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}

	mult := 1.0
	for _, u := range units {
		if u == unit {
			return int64(value * mult), nil
		}
		mult *= 1024
	}

	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}
