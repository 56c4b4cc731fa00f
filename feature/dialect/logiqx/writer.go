package logiqx

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/dialect"
	"datforge/feature/projection"
)

// Writer serializes a catalog as a Logiqx XML datafile.
type Writer struct {
	opts dialect.Options
}

// NewWriter returns a Writer using the given options.
func NewWriter(opts dialect.Options) *Writer {
	return &Writer{opts: opts}
}

// Write emits the header, then the machines in natural key order. It
// returns the number of item elements written.
func (w *Writer) Write(ctx context.Context, out io.Writer, c *catalog.Catalog) (int, error) {
	bw := bufio.NewWriter(out)

	fmt.Fprint(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(bw, "<!DOCTYPE datafile PUBLIC \"-//Logiqx//DTD ROM Management Datafile//EN\" \"http://www.logiqx.com/Dats/datafile.dtd\">\n")
	fmt.Fprint(bw, "<datafile>\n")
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
					fmt.Fprint(bw, "\t</machine>\n")
				}
				w.openMachine(bw, m)
				current = name
				open = true
			}
			if w.writeItem(bw, it) {
				count++
			}
		}
	}
	if open {
		fmt.Fprint(bw, "\t</machine>\n")
	}
	fmt.Fprint(bw, "</datafile>\n")

	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("write datafile: %w", err)
	}
	return count, nil
}

func (w *Writer) writeHeader(bw *bufio.Writer, h catalog.Header) {
	fmt.Fprint(bw, "\t<header>\n")
	for _, f := range []struct{ tag, val string }{
		{"name", h.Name},
		{"description", h.Description},
		{"rootdir", h.RootDir},
		{"category", h.Category},
		{"version", h.Version},
		{"date", h.Date},
		{"author", h.Author},
		{"email", h.Email},
		{"homepage", h.Homepage},
		{"url", h.URL},
		{"comment", h.Comment},
		{"type", h.Type},
	} {
		if f.val != "" {
			fmt.Fprintf(bw, "\t\t<%s>%s</%s>\n", f.tag, dialect.Escape(f.val), f.tag)
		}
	}
	if h.ForceMerging != "" || h.ForceNodump != "" || h.ForcePacking != "" {
		fmt.Fprint(bw, "\t\t<clrmamepro")
		writeAttr(bw, "forcemerging", h.ForceMerging)
		writeAttr(bw, "forcenodump", h.ForceNodump)
		writeAttr(bw, "forcepacking", h.ForcePacking)
		fmt.Fprint(bw, "/>\n")
	}
	fmt.Fprint(bw, "\t</header>\n")
}

// openMachine starts a machine block, suppressing lineage attributes
// that point back at the machine itself.
func (w *Writer) openMachine(bw *bufio.Writer, m *item.Machine) {
	if m == nil {
		m = &item.Machine{}
	}
	fmt.Fprintf(bw, "\t<machine name=\"%s\"", dialect.Escape(m.Name))
	writeAttr(bw, "sourcefile", m.SourceFile)
	if m.Flags.Has(item.FlagBios) {
		writeAttr(bw, "isbios", "yes")
	}
	if m.Flags.Has(item.FlagDevice) {
		writeAttr(bw, "isdevice", "yes")
	}
	if m.Flags.Has(item.FlagMechanical) {
		writeAttr(bw, "ismechanical", "yes")
	}
	writeAttr(bw, "runnable", m.Runnable.String())
	if !m.SelfReferential(m.CloneOf) {
		writeAttr(bw, "cloneof", m.CloneOf)
	}
	if !m.SelfReferential(m.RomOf) {
		writeAttr(bw, "romof", m.RomOf)
	}
	if !m.SelfReferential(m.SampleOf) {
		writeAttr(bw, "sampleof", m.SampleOf)
	}
	writeAttr(bw, "board", m.Board)
	writeAttr(bw, "rebuildto", m.RebuildTo)
	fmt.Fprint(bw, ">\n")

	if m.Comment != "" {
		fmt.Fprintf(bw, "\t\t<comment>%s</comment>\n", dialect.Escape(m.Comment))
	}
	if m.Description != "" {
		fmt.Fprintf(bw, "\t\t<description>%s</description>\n", dialect.Escape(m.Description))
	}
	if m.Year != "" {
		fmt.Fprintf(bw, "\t\t<year>%s</year>\n", dialect.Escape(m.Year))
	}
	if m.Manufacturer != "" {
		fmt.Fprintf(bw, "\t\t<manufacturer>%s</manufacturer>\n", dialect.Escape(m.Manufacturer))
	}
}

// writeItem emits one item element and reports whether anything was
// written. Blanks write nothing; the enclosing machine block already
// preserves the machine.
func (w *Writer) writeItem(bw *bufio.Writer, it item.Item) bool {
	ex := w.opts.Exclude

	switch v := it.(type) {
	case *item.Rom:
		if dialect.IsNullRom(v) {
			v = dialect.NormalizeNullRom(v, false)
		}
		if w.opts.IgnoreBlanks && dialect.SkipBlank(v) {
			return false
		}
		fmt.Fprintf(bw, "\t\t<rom name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldSize, "size", ex)
		writeField(bw, v, projection.FieldCRC, "crc", ex)
		writeField(bw, v, projection.FieldMD5, "md5", ex)
		writeField(bw, v, projection.FieldSHA1, "sha1", ex)
		writeField(bw, v, projection.FieldSHA256, "sha256", ex)
		writeField(bw, v, projection.FieldSHA384, "sha384", ex)
		writeField(bw, v, projection.FieldSHA512, "sha512", ex)
		writeField(bw, v, projection.FieldMerge, "merge", ex)
		writeField(bw, v, projection.FieldRegion, "region", ex)
		writeField(bw, v, projection.FieldOffset, "offset", ex)
		writeField(bw, v, projection.FieldBios, "bios", ex)
		writeField(bw, v, projection.FieldDate, "date", ex)
		writeField(bw, v, projection.FieldStatus, "status", ex)
		writeField(bw, v, projection.FieldInverted, "inverted", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.Disk:
		fmt.Fprintf(bw, "\t\t<disk name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldMD5, "md5", ex)
		writeField(bw, v, projection.FieldSHA1, "sha1", ex)
		writeField(bw, v, projection.FieldSHA256, "sha256", ex)
		writeField(bw, v, projection.FieldMerge, "merge", ex)
		writeField(bw, v, projection.FieldRegion, "region", ex)
		writeField(bw, v, projection.FieldIndex, "index", ex)
		writeField(bw, v, projection.FieldWritable, "writable", ex)
		writeField(bw, v, projection.FieldStatus, "status", ex)
		writeField(bw, v, projection.FieldOptional, "optional", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.Sample:
		fmt.Fprintf(bw, "\t\t<sample name=\"%s\"/>\n", dialect.Escape(v.Name()))
	case *item.Archive:
		fmt.Fprintf(bw, "\t\t<archive name=\"%s\"/>\n", dialect.Escape(v.Name()))
	case *item.BiosSet:
		fmt.Fprintf(bw, "\t\t<biosset name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldDescription, "description", ex)
		writeField(bw, v, projection.FieldDefault, "default", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.Release:
		fmt.Fprintf(bw, "\t\t<release name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldRegion, "region", ex)
		writeField(bw, v, projection.FieldLanguage, "language", ex)
		writeField(bw, v, projection.FieldDate, "date", ex)
		writeField(bw, v, projection.FieldDefault, "default", ex)
		fmt.Fprint(bw, "/>\n")
	default:
		return false
	}
	return true
}

func writeField(bw *bufio.Writer, it item.Item, f projection.ItemField, attr string, ex projection.FieldSet) {
	if v, ok := projection.Get(it, f, ex); ok {
		writeAttr(bw, attr, v)
	}
}

func writeAttr(bw *bufio.Writer, name, val string) {
	if val != "" {
		fmt.Fprintf(bw, " %s=\"%s\"", name, dialect.Escape(val))
	}
}
