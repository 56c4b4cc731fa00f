package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"datforge/core/item"
	"datforge/core/utils"
)

// BucketMode selects how dedup keys are derived from items.
type BucketMode uint8

const (
	// BucketName keys by the item's own name.
	BucketName BucketMode = iota
	// BucketGameName keys by machine name plus item name, so identical
	// file names under different machines stay apart.
	BucketGameName
	// BucketMD5 keys by the MD5 hash for cross-machine dedup.
	BucketMD5
	// BucketSHA1 keys by the SHA-1 hash for cross-machine dedup.
	BucketSHA1
	// BucketSize keys by the item's byte size.
	BucketSize
)

// Options control key derivation and merge behavior.
type Options struct {
	// Mode selects the dedup key source.
	Mode BucketMode
	// CaseFold lowercases keys so "Game" and "game" share a bucket.
	CaseFold bool
	// Norename drops the source qualifier from name keys, letting items
	// from different inputs share buckets and therefore merge.
	Norename bool
}

// Catalog is the canonical in-memory collection of items keyed by their
// dedup key. Bucket order is irrelevant at the top level; insertion
// order is preserved within a bucket.
type Catalog struct {
	// Header is the DAT-level metadata for this catalog.
	Header Header

	opts    Options
	buckets map[string][]item.Item
	order   []string
	lastKey string
	count   int
}

// New returns an empty catalog using the given bucketing options.
func New(opts Options) *Catalog {
	return &Catalog{
		opts:    opts,
		buckets: make(map[string][]item.Item),
	}
}

// Options returns the bucketing options the catalog was built with.
func (c *Catalog) Options() Options { return c.opts }

// Key derives the dedup key for an item under the catalog's options.
// Hash modes fall back to the name key when the item lacks that hash.
func (c *Catalog) Key(it item.Item) string {
	var key string
	switch c.opts.Mode {
	case BucketGameName:
		game := ""
		if it.Machine() != nil {
			game = it.Machine().Name
		}
		key = game + "/" + it.Name()
	case BucketMD5:
		key = itemHash(it, hashMD5)
	case BucketSHA1:
		key = itemHash(it, hashSHA1)
	case BucketSize:
		if r, ok := it.(*item.Rom); ok && r.Size != utils.SizeUnknown {
			key = fmt.Sprintf("%d", r.Size)
		}
	}
	if key == "" {
		key = it.Name()
		if !c.opts.Norename {
			key = fmt.Sprintf("%04d-%s", it.Source().Index, key)
		}
	}
	if c.opts.CaseFold {
		key = strings.ToLower(key)
	}
	return key
}

const (
	hashMD5 = iota
	hashSHA1
)

func itemHash(it item.Item, which int) string {
	switch v := it.(type) {
	case *item.Rom:
		if which == hashMD5 {
			return v.MD5
		}
		return v.SHA1
	case *item.Disk:
		if which == hashMD5 {
			return v.MD5
		}
		return v.SHA1
	default:
		return ""
	}
}

// Insert adds the item, or merges it into an existing duplicate in its
// bucket. The first-seen item stays primary; a merged duplicate only
// contributes hashes the primary lacked. Returns true when the item was
// stored as new.
func (c *Catalog) Insert(it item.Item) bool {
	key := c.Key(it)
	c.lastKey = key

	bucket := c.buckets[key]
	for _, prior := range bucket {
		if !prior.Equals(it) {
			continue
		}
		switch p := prior.(type) {
		case *item.Rom:
			p.FillMissing(it.(*item.Rom))
		case *item.Disk:
			p.FillMissing(it.(*item.Disk))
		}
		return false
	}

	if len(bucket) == 0 {
		c.order = append(c.order, key)
	}
	c.buckets[key] = append(bucket, it)
	c.count++
	return true
}

// LastKey returns the key of the most recently inserted or merged item.
// Dialect readers use it to target load-flag continuations.
func (c *Catalog) LastKey() string { return c.lastKey }

// AmendLastSize grows the size of the newest Rom in the given bucket by
// delta. A "continue" or "ignore" load-flag record does not create a new
// item; its size folds into the record before it. Returns false when the
// bucket is empty or its newest item is not a Rom.
func (c *Catalog) AmendLastSize(key string, delta int64) bool {
	bucket := c.buckets[key]
	if len(bucket) == 0 {
		return false
	}
	r, ok := bucket[len(bucket)-1].(*item.Rom)
	if !ok {
		return false
	}
	if delta == utils.SizeUnknown {
		return false
	}
	if r.Size == utils.SizeUnknown {
		r.Size = delta
	} else {
		r.Size += delta
	}
	return true
}

// Bucket returns the items stored under key, in insertion order.
func (c *Catalog) Bucket(key string) []item.Item {
	return c.buckets[key]
}

// Keys returns all bucket keys in first-insertion order.
func (c *Catalog) Keys() []string {
	return c.order
}

// SortedKeys returns bucket keys in natural order: locale-aware and
// numeric-substring-aware, so "disk2" sorts before "disk10". Writers
// iterate in this order.
func (c *Catalog) SortedKeys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	// Collators are not safe for concurrent use, so each call builds its
	// own; split outputs may be written in parallel.
	col := collate.New(language.Und, collate.Loose, collate.Numeric)
	sort.SliceStable(keys, func(i, j int) bool {
		return col.CompareString(keys[i], keys[j]) < 0
	})
	return keys
}

// Len returns the number of stored items.
func (c *Catalog) Len() int { return c.count }

// MachineCount returns the number of distinct machine names.
func (c *Catalog) MachineCount() int {
	seen := make(map[string]struct{})
	for _, bucket := range c.buckets {
		for _, it := range bucket {
			if m := it.Machine(); m != nil {
				seen[m.Name] = struct{}{}
			}
		}
	}
	return len(seen)
}

// Each calls fn for every item, buckets in first-insertion order.
func (c *Catalog) Each(fn func(key string, it item.Item)) {
	for _, key := range c.order {
		for _, it := range c.buckets[key] {
			fn(key, it)
		}
	}
}

// Clone returns a deep copy: same header and options, independent item
// copies throughout.
func (c *Catalog) Clone() *Catalog {
	out := c.Derive("", "")
	c.Each(func(_ string, it item.Item) {
		out.Insert(it.Clone())
	})
	return out
}

// Derive returns an empty catalog with the same options and a copy of
// the header; non-empty suffixes are appended to the header name and
// description. Split operations build their outputs this way.
func (c *Catalog) Derive(nameSuffix, descSuffix string) *Catalog {
	out := New(c.opts)
	out.Header = c.Header
	if nameSuffix != "" {
		out.Header.Name += nameSuffix
	}
	if descSuffix != "" {
		out.Header.Description += descSuffix
	}
	return out
}
