package cases

import (
	"strconv"
	"strings"
)

// Classify judges a measured value against a reference interval written as
// "min - max". Boundaries are inclusive. When either the value or one side of
// the interval does not parse as a number, the row is treated as Normal:
// qualitative rows ("Negative", "Not Detected") are never auto-flagged.
// Thousands separators are stripped before parsing, since several built-in
// panels write ranges like "6,000 - 17,000".
func Classify(value, normalRange string) ResultStatus {
	v, ok := parseNumber(value)
	if !ok {
		return ResultNormal
	}

	min, max, ok := parseRange(normalRange)
	if !ok {
		return ResultNormal
	}

	if v < min || v > max {
		return ResultAbnormal
	}
	return ResultNormal
}

func parseRange(normalRange string) (min, max float64, ok bool) {
	parts := strings.SplitN(normalRange, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, okMin := parseNumber(parts[0])
	max, okMax := parseNumber(parts[1])
	if !okMin || !okMax {
		return 0, 0, false
	}
	return min, max, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
