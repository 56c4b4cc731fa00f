package dialect

import (
	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/utils"
)

// IsNullRom reports whether r is the synthetic empty-folder marker
// produced by directory-scanning tools: named "null" with unknown size
// and a "null" CRC.
func IsNullRom(r *item.Rom) bool {
	return r.Name() == "null" && r.Size == utils.SizeUnknown && hashes.IsNull(r.CRC)
}

// NormalizeNullRom returns a copy of the marker adjusted for output:
// size becomes zero, "null" hash sentinels become the algorithm's
// all-zero constant, and when dashName is set the name becomes "-"
// (the spelling the text dialects use).
func NormalizeNullRom(r *item.Rom, dashName bool) *item.Rom {
	out := r.Clone().(*item.Rom)
	out.Size = 0
	if dashName {
		out.SetName("-")
	}
	for _, k := range hashes.Kinds() {
		if hashes.IsNull(out.Hash(k)) {
			out.SetHash(k, k.Zero())
		}
	}
	return out
}

// SkipBlank reports whether a writer in ignoreBlanks mode should drop
// the item: Rom items of zero or unknown size.
func SkipBlank(it item.Item) bool {
	r, ok := it.(*item.Rom)
	return ok && (r.Size == 0 || r.Size == utils.SizeUnknown)
}
