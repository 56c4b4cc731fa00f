package split

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/core/utils"
)

// ErrNotSupported is returned by split modes that exist in the CLI
// surface but have no defined partition semantics yet.
var ErrNotSupported = errors.New("split: mode not supported")

// ByExtension partitions items into two catalogs by the extension of
// their item name. Names matching neither set land in both outputs, so
// an ambiguous item is never dropped.
func ByExtension(c *catalog.Catalog, extsA, extsB []string) []*catalog.Catalog {
	setA := extSet(extsA)
	setB := extSet(extsB)

	outA := c.Derive(" ("+extLabel(extsA)+")", " ("+extLabel(extsA)+")")
	outB := c.Derive(" ("+extLabel(extsB)+")", " ("+extLabel(extsB)+")")

	c.Each(func(_ string, it item.Item) {
		ext := strings.ToLower(path.Ext(it.Name()))
		switch {
		case setA[ext]:
			outA.Insert(it.Clone())
		case setB[ext]:
			outB.Insert(it.Clone())
		default:
			outA.Insert(it.Clone())
			outB.Insert(it.Clone())
		}
	})
	return compact(outA, outB)
}

// ByHash partitions items into four catalogs in priority order: nodump
// status, has SHA-1, has MD5 without SHA-1, and everything else keyed
// by CRC. An item lands in exactly one output.
func ByHash(c *catalog.Catalog) []*catalog.Catalog {
	nodump := c.Derive(" (nodump)", " (nodump)")
	sha1 := c.Derive(" (sha1)", " (sha1)")
	md5 := c.Derive(" (md5)", " (md5)")
	crc := c.Derive(" (crc)", " (crc)")

	c.Each(func(_ string, it item.Item) {
		switch {
		case isNodump(it):
			nodump.Insert(it.Clone())
		case hashOf(it, hashSHA1) != "":
			sha1.Insert(it.Clone())
		case hashOf(it, hashMD5) != "":
			md5.Insert(it.Clone())
		default:
			crc.Insert(it.Clone())
		}
	})
	return compact(nodump, sha1, md5, crc)
}

// BySize partitions items into a below-threshold catalog and an
// at-or-above catalog. Items without a size count as below.
func BySize(c *catalog.Catalog, threshold int64) []*catalog.Catalog {
	below := c.Derive(fmt.Sprintf(" (under %d)", threshold), fmt.Sprintf(" (under %d)", threshold))
	above := c.Derive(fmt.Sprintf(" (over %d)", threshold), fmt.Sprintf(" (over %d)", threshold))

	c.Each(func(_ string, it item.Item) {
		if sizeOf(it) >= threshold {
			above.Insert(it.Clone())
		} else {
			below.Insert(it.Clone())
		}
	})
	return compact(below, above)
}

// ByChunk packs items into catalogs in natural key order, starting a
// new catalog whenever adding the next item would push the running
// total past the budget. A single item larger than the budget still
// gets a catalog of its own.
func ByChunk(c *catalog.Catalog, budget int64) []*catalog.Catalog {
	var outs []*catalog.Catalog
	var cur *catalog.Catalog
	var used int64

	next := func() {
		n := len(outs) + 1
		cur = c.Derive(fmt.Sprintf(" (chunk %d)", n), fmt.Sprintf(" (chunk %d)", n))
		outs = append(outs, cur)
		used = 0
	}

	for _, key := range c.SortedKeys() {
		for _, it := range c.Bucket(key) {
			sz := sizeOf(it)
			if sz < 0 {
				sz = 0
			}
			if cur == nil || (budget > 0 && used > 0 && used+sz > budget) {
				next()
			}
			cur.Insert(it.Clone())
			used += sz
		}
	}
	return compact(outs...)
}

// ByKind gives every item variant its own catalog.
func ByKind(c *catalog.Catalog) []*catalog.Catalog {
	byKind := make(map[item.Kind]*catalog.Catalog)
	var order []item.Kind

	c.Each(func(_ string, it item.Item) {
		out, ok := byKind[it.Kind()]
		if !ok {
			label := " (" + it.Kind().String() + ")"
			out = c.Derive(label, label)
			byKind[it.Kind()] = out
			order = append(order, it.Kind())
		}
		out.Insert(it.Clone())
	})

	outs := make([]*catalog.Catalog, 0, len(order))
	for _, k := range order {
		outs = append(outs, byKind[k])
	}
	return outs
}

// ByLevel would regroup items by truncating hierarchical machine names
// to a given depth. The partition semantics are undefined, so it
// reports ErrNotSupported instead of guessing.
func ByLevel(c *catalog.Catalog, depth int) ([]*catalog.Catalog, error) {
	return nil, fmt.Errorf("split by level %d: %w", depth, ErrNotSupported)
}

func extSet(exts []string) map[string]bool {
	out := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = true
	}
	return out
}

func extLabel(exts []string) string {
	parts := make([]string, 0, len(exts))
	for _, e := range exts {
		parts = append(parts, strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), "."))
	}
	return strings.Join(parts, "+")
}

func isNodump(it item.Item) bool {
	switch v := it.(type) {
	case *item.Rom:
		return v.Status == item.StatusNodump
	case *item.Disk:
		return v.Status == item.StatusNodump
	}
	return false
}

const (
	hashMD5 = iota
	hashSHA1
)

func hashOf(it item.Item, which int) string {
	switch v := it.(type) {
	case *item.Rom:
		if which == hashSHA1 {
			return v.SHA1
		}
		return v.MD5
	case *item.Disk:
		if which == hashSHA1 {
			return v.SHA1
		}
		return v.MD5
	}
	return ""
}

func sizeOf(it item.Item) int64 {
	if r, ok := it.(*item.Rom); ok {
		return r.Size
	}
	return utils.SizeUnknown
}

// compact drops catalogs with no items.
func compact(outs ...*catalog.Catalog) []*catalog.Catalog {
	kept := outs[:0]
	for _, o := range outs {
		if o.Len() > 0 {
			kept = append(kept, o)
		}
	}
	return kept
}
