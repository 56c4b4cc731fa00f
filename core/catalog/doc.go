// Package catalog holds the bucketed item collection every dialect reader
// fills and every writer drains.
//
// Items are grouped under a dedup key chosen by the bucketing options;
// inserting an item that duplicate-matches an earlier one in its bucket
// merges the two instead of storing both, accumulating the union of their
// known hashes. The first-seen item stays primary.
package catalog
