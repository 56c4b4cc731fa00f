package cmpro

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/dialect"
	"datforge/feature/projection"
)

// Writer serializes a catalog as clrmamepro text.
type Writer struct {
	opts dialect.Options
}

// NewWriter returns a Writer using the given options.
func NewWriter(opts dialect.Options) *Writer {
	return &Writer{opts: opts}
}

// Write emits the clrmamepro header block, then one game block per
// machine in natural key order. The empty-folder marker Rom comes out
// with a dash name and zero size.
func (w *Writer) Write(ctx context.Context, out io.Writer, c *catalog.Catalog) (int, error) {
	bw := bufio.NewWriter(out)
	w.writeHeader(bw, c.Header)

	count := 0
	current := ""
	open := false

	for _, key := range c.SortedKeys() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		for _, it := range c.Bucket(key) {
			m := it.Machine()
			name := ""
			if m != nil {
				name = m.Name
			}
			if !open || name != current {
				if open {
					fmt.Fprint(bw, ")\n\n")
				}
				w.openGame(bw, m)
				current = name
				open = true
			}
			if w.writeItem(bw, it) {
				count++
			}
		}
	}
	if open {
		fmt.Fprint(bw, ")\n")
	}
	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("write dat: %w", err)
	}
	return count, nil
}

func (w *Writer) writeHeader(bw *bufio.Writer, h catalog.Header) {
	fmt.Fprint(bw, "clrmamepro (\n")
	writePair(bw, "name", h.Name)
	writePair(bw, "description", h.Description)
	writePair(bw, "rootdir", h.RootDir)
	writePair(bw, "category", h.Category)
	writePair(bw, "version", h.Version)
	writePair(bw, "date", h.Date)
	writePair(bw, "author", h.Author)
	writePair(bw, "email", h.Email)
	writePair(bw, "homepage", h.Homepage)
	writePair(bw, "url", h.URL)
	writePair(bw, "comment", h.Comment)
	writePair(bw, "forcemerging", h.ForceMerging)
	writePair(bw, "forcenodump", h.ForceNodump)
	writePair(bw, "forcepacking", h.ForcePacking)
	fmt.Fprint(bw, ")\n\n")
}

func (w *Writer) openGame(bw *bufio.Writer, m *item.Machine) {
	if m == nil {
		m = &item.Machine{}
	}
	block := "game"
	if m.Flags.Has(item.FlagBios) {
		block = "resource"
	}
	fmt.Fprintf(bw, "%s (\n", block)
	writePair(bw, "name", m.Name)
	writePair(bw, "description", m.Description)
	writePair(bw, "year", m.Year)
	writePair(bw, "manufacturer", m.Manufacturer)
	if !m.SelfReferential(m.CloneOf) {
		writePair(bw, "cloneof", m.CloneOf)
	}
	if !m.SelfReferential(m.RomOf) {
		writePair(bw, "romof", m.RomOf)
	}
	if !m.SelfReferential(m.SampleOf) {
		writePair(bw, "sampleof", m.SampleOf)
	}
	writePair(bw, "sourcefile", m.SourceFile)
}

func (w *Writer) writeItem(bw *bufio.Writer, it item.Item) bool {
	ex := w.opts.Exclude

	switch v := it.(type) {
	case *item.Rom:
		if dialect.IsNullRom(v) {
			v = dialect.NormalizeNullRom(v, true)
		}
		if w.opts.IgnoreBlanks && dialect.SkipBlank(v) {
			return false
		}
		fmt.Fprintf(bw, "\trom ( name %s", quote(v.Name()))
		writeInline(bw, v, projection.FieldSize, "size", ex)
		writeInline(bw, v, projection.FieldCRC, "crc", ex)
		writeInline(bw, v, projection.FieldMD5, "md5", ex)
		writeInline(bw, v, projection.FieldSHA1, "sha1", ex)
		writeInline(bw, v, projection.FieldSHA256, "sha256", ex)
		writeInline(bw, v, projection.FieldSHA384, "sha384", ex)
		writeInline(bw, v, projection.FieldSHA512, "sha512", ex)
		writeInline(bw, v, projection.FieldMerge, "merge", ex)
		writeInline(bw, v, projection.FieldRegion, "region", ex)
		writeInline(bw, v, projection.FieldOffset, "offs", ex)
		writeInline(bw, v, projection.FieldDate, "date", ex)
		writeInline(bw, v, projection.FieldStatus, "flags", ex)
		fmt.Fprint(bw, " )\n")
	case *item.Disk:
		fmt.Fprintf(bw, "\tdisk ( name %s", quote(v.Name()))
		writeInline(bw, v, projection.FieldMD5, "md5", ex)
		writeInline(bw, v, projection.FieldSHA1, "sha1", ex)
		writeInline(bw, v, projection.FieldMerge, "merge", ex)
		writeInline(bw, v, projection.FieldRegion, "region", ex)
		writeInline(bw, v, projection.FieldIndex, "index", ex)
		writeInline(bw, v, projection.FieldStatus, "flags", ex)
		fmt.Fprint(bw, " )\n")
	case *item.Sample:
		fmt.Fprintf(bw, "\tsample %s\n", quote(v.Name()))
	case *item.Archive:
		fmt.Fprintf(bw, "\tarchive %s\n", quote(v.Name()))
	default:
		return false
	}
	return true
}

func writeInline(bw *bufio.Writer, it item.Item, f projection.ItemField, key string, ex projection.FieldSet) {
	if v, ok := projection.Get(it, f, ex); ok {
		fmt.Fprintf(bw, " %s %s", key, quote(v))
	}
}

func writePair(bw *bufio.Writer, key, val string) {
	if val != "" {
		fmt.Fprintf(bw, "\t%s %s\n", key, quote(val))
	}
}

// quote wraps values that need it; plain hashes, sizes and single words
// stay bare the way clrmamepro itself writes them.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t()\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
