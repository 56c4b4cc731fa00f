// Package utils provides small conversion helpers shared by the dialect
// readers, mainly the hex-or-decimal size attribute parsing that several
// DAT formats use interchangeably.
package utils
