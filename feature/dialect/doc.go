// Package dialect defines the reader/writer contract every DAT format
// implements, the shared options threaded through them, and format
// detection for inputs whose dialect is not stated.
//
// Concrete dialects live in subpackages and register themselves here,
// so callers construct parsers and writers by Format without importing
// each dialect directly.
package dialect
