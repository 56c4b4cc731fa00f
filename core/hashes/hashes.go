package hashes

import "strings"

// Kind identifies a hash algorithm carried by catalog items.
type Kind uint8

const (
	CRC32 Kind = iota
	MD5
	SHA1
	SHA256
	SHA384
	SHA512
)

// NullSentinel is the literal hash value emitted by directory-scanning
// tools for empty-folder marker entries. It survives normalization so the
// dialect writers can recognize and rewrite such entries.
const NullSentinel = "null"

// kindNames is indexed by Kind.
var kindNames = [...]string{"crc", "md5", "sha1", "sha256", "sha384", "sha512"}

// kindLens holds the required lowercase-hex length per Kind.
var kindLens = [...]int{8, 32, 40, 64, 96, 128}

// String returns the conventional attribute name for the hash kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// HexLen returns the required number of hex characters for the kind.
func (k Kind) HexLen() int {
	if int(k) < len(kindLens) {
		return kindLens[k]
	}
	return 0
}

// Zero returns the all-zero hash constant for the kind.
func (k Kind) Zero() string {
	return strings.Repeat("0", k.HexLen())
}

// Kinds lists every supported hash kind in ascending strength order.
func Kinds() []Kind {
	return []Kind{CRC32, MD5, SHA1, SHA256, SHA384, SHA512}
}

// Normalize canonicalizes a raw hash attribute value for the given kind.
// The result is lowercase hex of exactly the kind's length, the literal
// NullSentinel, or "" when the input is absent or malformed. Malformed
// hashes are dropped rather than stored, so every non-empty stored hash
// is comparable byte-for-byte.
func Normalize(k Kind, v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "\"")
	v = strings.ToLower(v)
	v = strings.TrimPrefix(v, "0x")
	if v == "" {
		return ""
	}
	if v == NullSentinel {
		return NullSentinel
	}
	if len(v) != k.HexLen() {
		return ""
	}
	for _, c := range v {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ""
		}
	}
	return v
}

// IsNull reports whether the value is the empty-folder marker sentinel.
func IsNull(v string) bool {
	return v == NullSentinel
}

// ConditionalEquals compares two normalized hash values where absence on
// either side is not a mismatch. It returns false only when both values
// are present and differ.
func ConditionalEquals(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return a == b
}
