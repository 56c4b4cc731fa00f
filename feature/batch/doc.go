// Package batch runs multi-file catalog jobs: parsing a set of DAT
// inputs on parallel workers, merging them into one catalog, and
// building catalogs from directory scans through the external hash and
// enumeration collaborators. A failing input never aborts its siblings;
// failures are reported per file and aggregated.
package batch
