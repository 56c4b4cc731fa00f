package dialect

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/projection"
)

// Format identifies a DAT dialect.
type Format string

const (
	// Logiqx is the Logiqx XML datafile format.
	Logiqx Format = "logiqx"
	// ListXML is the MAME -listxml output format.
	ListXML Format = "listxml"
	// SoftwareList is the MAME software list XML format.
	SoftwareList Format = "softwarelist"
	// AttractMode is the AttractMode semicolon-separated romlist format.
	AttractMode Format = "attractmode"
	// ClrMamePro is the legacy clrmamepro paren-block text format.
	ClrMamePro Format = "cmpro"
)

// Options carry the per-run settings every dialect honors. The zero
// value is usable; Logger defaults to a nop logger.
type Options struct {
	// Logger receives skip-and-continue diagnostics.
	Logger *zap.Logger
	// Source identifies the input file, stamped onto every parsed item.
	Source item.Source
	// KeepFullPath keeps joined directory paths as machine names in
	// SuperDAT inputs; when false only the leaf segment is kept.
	KeepFullPath bool
	// Exclude lists item fields writers omit from output.
	Exclude projection.FieldSet
	// IgnoreBlanks makes writers skip Rom items of zero or unknown size.
	IgnoreBlanks bool
}

// Log returns the configured logger or a nop logger.
func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Parser streams one dialect's text into a catalog. It returns the
// number of item records processed. Malformed records are skipped, never
// surfaced; only an unreadable input yields an error.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, c *catalog.Catalog) (int, error)
}

// Writer serializes a catalog into one dialect's text. It returns the
// number of items written. An I/O failure is fatal for this output only.
type Writer interface {
	Write(ctx context.Context, w io.Writer, c *catalog.Catalog) (int, error)
}

var (
	parserFactories = map[Format]func(Options) Parser{}
	writerFactories = map[Format]func(Options) Writer{}
)

// RegisterParser is called by dialect subpackages at init time.
func RegisterParser(f Format, fn func(Options) Parser) {
	parserFactories[f] = fn
}

// RegisterWriter is called by dialect subpackages at init time.
func RegisterWriter(f Format, fn func(Options) Writer) {
	writerFactories[f] = fn
}

// NewParser returns a parser for the format.
func NewParser(f Format, opts Options) (Parser, error) {
	fn, ok := parserFactories[f]
	if !ok {
		return nil, fmt.Errorf("dialect: no parser registered for %q", f)
	}
	return fn(opts), nil
}

// NewWriter returns a writer for the format.
func NewWriter(f Format, opts Options) (Writer, error) {
	fn, ok := writerFactories[f]
	if !ok {
		return nil, fmt.Errorf("dialect: no writer registered for %q", f)
	}
	return fn(opts), nil
}

// Formats lists every registered parser format.
func Formats() []Format {
	return []Format{Logiqx, ListXML, SoftwareList, AttractMode, ClrMamePro}
}
