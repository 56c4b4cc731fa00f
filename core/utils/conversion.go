package utils

import (
	"strconv"
	"strings"
)

// SizeUnknown is the sentinel for a size that was absent or unparsable.
// It is distinct from 0, which means a real zero-byte item.
const SizeUnknown int64 = -1

// ToSize parses a dialect size attribute. Values containing "0x" are read
// as hexadecimal, everything else as decimal. Unparsable input yields
// SizeUnknown rather than an error, matching the skip-and-continue policy
// of the dialect readers.
func ToSize(val string) int64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return SizeUnknown
	}
	if idx := strings.Index(strings.ToLower(val), "0x"); idx >= 0 {
		n, err := strconv.ParseInt(strings.ToLower(val)[idx+2:], 16, 64)
		if err != nil {
			return SizeUnknown
		}
		return n
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return SizeUnknown
	}
	return n
}

// ToBool converts dialect attribute spellings to bool.
// It accepts "1", "true" and "yes" in any case.
func ToBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
