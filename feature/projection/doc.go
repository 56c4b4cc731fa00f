// Package projection implements generic get/set/remove/replace operations
// over the named fields of any item variant.
//
// Writers consult it to honor exclude-field configuration, and cleaning
// passes use it to null out or replace selected fields across a whole
// catalog. The field sets driving it are plain values threaded through
// calls, never process-wide state; a run builds them once, optionally
// from a YAML profile.
package projection
