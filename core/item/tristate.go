package item

import "strings"

// TriState represents an attribute that can be yes, no, or unstated.
// The zero value is unstated, so omitted dialect attributes need no
// special handling.
type TriState uint8

const (
	// TriUnknown means the attribute was not present in the source.
	TriUnknown TriState = iota
	// TriYes is an explicit affirmative.
	TriYes
	// TriNo is an explicit negative.
	TriNo
)

// ParseTriState maps dialect attribute spellings onto a TriState.
// Anything unrecognized stays unstated.
func ParseTriState(v string) TriState {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return TriYes
	case "no", "false", "0":
		return TriNo
	default:
		return TriUnknown
	}
}

// String returns the canonical attribute spelling, or "" when unstated.
func (t TriState) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return ""
	}
}

// DumpStatus describes the confidence in an item's dump.
type DumpStatus uint8

const (
	// StatusNone is the default; the dump is assumed good.
	StatusNone DumpStatus = iota
	// StatusBadDump marks a dump known to be wrong.
	StatusBadDump
	// StatusNodump marks media that could not be read; hash fields are
	// meaningless for such items.
	StatusNodump
	// StatusVerified marks a dump confirmed against a second source.
	StatusVerified
)

// ParseDumpStatus maps a status (or legacy flags) attribute value onto a
// DumpStatus. Unrecognized values mean StatusNone.
func ParseDumpStatus(v string) DumpStatus {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "baddump":
		return StatusBadDump
	case "nodump":
		return StatusNodump
	case "verified":
		return StatusVerified
	default:
		return StatusNone
	}
}

// String returns the attribute spelling, or "" for StatusNone so writers
// can omit the default.
func (s DumpStatus) String() string {
	switch s {
	case StatusBadDump:
		return "baddump"
	case StatusNodump:
		return "nodump"
	case StatusVerified:
		return "verified"
	default:
		return ""
	}
}
