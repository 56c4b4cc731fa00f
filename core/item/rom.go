package item

import (
	"datforge/core/hashes"
	"datforge/core/utils"
)

// Rom is a single data file belonging to a machine.
type Rom struct {
	base

	// Size is the byte length, or utils.SizeUnknown when the source did
	// not state one. Unknown is distinct from zero.
	Size int64

	CRC    string
	MD5    string
	SHA1   string
	SHA256 string
	SHA384 string
	SHA512 string

	// Merge references the parent-machine item this one is redundant
	// with, for merged-set output modes.
	Merge  string
	Region string
	Offset string
	Bios   string
	Date   string

	Status   DumpStatus
	Inverted TriState
}

// NewRom returns a Rom with an unknown size.
func NewRom(name string) *Rom {
	return &Rom{base: base{name: name}, Size: utils.SizeUnknown}
}

// Kind returns KindRom.
func (r *Rom) Kind() Kind { return KindRom }

// Clone returns a deep copy.
func (r *Rom) Clone() Item {
	out := *r
	out.base = r.cloneBase()
	return &out
}

// Hash returns the stored value for the given hash kind.
func (r *Rom) Hash(k hashes.Kind) string {
	switch k {
	case hashes.CRC32:
		return r.CRC
	case hashes.MD5:
		return r.MD5
	case hashes.SHA1:
		return r.SHA1
	case hashes.SHA256:
		return r.SHA256
	case hashes.SHA384:
		return r.SHA384
	case hashes.SHA512:
		return r.SHA512
	default:
		return ""
	}
}

// SetHash normalizes and stores a hash value for the given kind.
// Malformed input clears the field.
func (r *Rom) SetHash(k hashes.Kind, v string) {
	v = hashes.Normalize(k, v)
	switch k {
	case hashes.CRC32:
		r.CRC = v
	case hashes.MD5:
		r.MD5 = v
	case hashes.SHA1:
		r.SHA1 = v
	case hashes.SHA256:
		r.SHA256 = v
	case hashes.SHA384:
		r.SHA384 = v
	case hashes.SHA512:
		r.SHA512 = v
	}
}

// HasAnyHash reports whether at least one hash field is populated.
func (r *Rom) HasAnyHash() bool {
	return r.CRC != "" || r.MD5 != "" || r.SHA1 != "" ||
		r.SHA256 != "" || r.SHA384 != "" || r.SHA512 != ""
}

// Equals implements the hash-aware duplicate rule for ROMs.
//
// Nodump on either side short-circuits: only two hashless Nodump items
// with identical names (and compatible sizes) are duplicates. Otherwise
// every hash kind present on both sides must agree, at least one kind
// must be shared (disjoint hash coverage is not a match), and known
// sizes must be equal. An unknown size never blocks a match.
func (r *Rom) Equals(other Item) bool {
	o, ok := other.(*Rom)
	if !ok {
		return false
	}

	if r.Status == StatusNodump || o.Status == StatusNodump {
		return r.Status == StatusNodump && o.Status == StatusNodump &&
			r.name == o.name &&
			!r.HasAnyHash() && !o.HasAnyHash() &&
			sizesCompatible(r.Size, o.Size)
	}

	if !sizesCompatible(r.Size, o.Size) {
		return false
	}
	if !r.HasAnyHash() || !o.HasAnyHash() {
		return false
	}

	shared := false
	for _, k := range hashes.Kinds() {
		a, b := r.Hash(k), o.Hash(k)
		if a == "" || b == "" {
			continue
		}
		if a != b {
			return false
		}
		shared = true
	}
	return shared
}

// FillMissing copies every hash other has that the receiver lacks.
// It is idempotent and never overwrites a populated field, so the first
// source to state a hash keeps provenance.
func (r *Rom) FillMissing(other *Rom) {
	if other == nil {
		return
	}
	for _, k := range hashes.Kinds() {
		if r.Hash(k) == "" && other.Hash(k) != "" {
			r.SetHash(k, other.Hash(k))
		}
	}
}

// sizesCompatible reports whether two sizes can belong to the same data:
// equal, or unknown on either side.
func sizesCompatible(a, b int64) bool {
	return a == utils.SizeUnknown || b == utils.SizeUnknown || a == b
}
