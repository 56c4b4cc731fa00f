// Package item defines the canonical data model shared by every DAT
// dialect: machines, their provenance, and the tagged item variants
// (Rom, Disk, Sample, Archive, BiosSet, Release, Blank) they contain.
//
// The variants form a closed sum type behind the Item interface. Each
// variant implements its own duplicate-detection rule; for Rom and Disk
// that is the hash-aware three-valued comparison documented on their
// Equals methods, which must stay correct under partial hash
// availability (an item may carry any subset of the supported hashes).
package item
