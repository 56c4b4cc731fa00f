// Package split partitions a catalog into multiple derived catalogs by
// extension, hash availability, size, cumulative size budget, or item
// kind. Output catalogs carry deep copies of the selected items, never
// aliases, and empty outputs are dropped.
package split
