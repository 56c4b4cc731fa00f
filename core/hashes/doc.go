// Package hashes canonicalizes the hash strings carried by catalog items.
//
// Every hash stored on an item has passed through Normalize: it is
// lowercase hex of exactly the algorithm's length, or the literal "null"
// sentinel used by directory-scanning tools for empty-folder markers.
// Comparison helpers build on that canonical form; in particular
// ConditionalEquals treats a hash present on only one side as compatible
// rather than mismatched, which is what duplicate detection under partial
// hash availability requires.
package hashes
