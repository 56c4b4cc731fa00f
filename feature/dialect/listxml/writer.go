package listxml

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

// Writer serializes a catalog as MAME list XML.
type Writer struct {
	opts dialect.Options
}

// NewWriter returns a Writer using the given options.
func NewWriter(opts dialect.Options) *Writer {
	return &Writer{opts: opts}
}

// Write emits a mame root element with one machine block per machine in
// natural key order. Device and slot-option lists are emitted as
// device_ref and slot/slotoption elements.
func (w *Writer) Write(ctx context.Context, out io.Writer, c *catalog.Catalog) (int, error) {
	bw := bufio.NewWriter(out)

	fmt.Fprint(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<mame build=\"%s\">\n", dialect.Escape(c.Header.Version))

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
	fmt.Fprint(bw, "</mame>\n")

	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("write listxml: %w", err)
	}
	return count, nil
}

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
	fmt.Fprint(bw, ">\n")

	if m.Description != "" {
		fmt.Fprintf(bw, "\t\t<description>%s</description>\n", dialect.Escape(m.Description))
	}
	if m.Year != "" {
		fmt.Fprintf(bw, "\t\t<year>%s</year>\n", dialect.Escape(m.Year))
	}
	if m.Manufacturer != "" {
		fmt.Fprintf(bw, "\t\t<manufacturer>%s</manufacturer>\n", dialect.Escape(m.Manufacturer))
	}
	for _, d := range m.Devices {
		fmt.Fprintf(bw, "\t\t<device_ref name=\"%s\"/>\n", dialect.Escape(d))
	}
	for _, s := range m.SlotOptions {
		fmt.Fprintf(bw, "\t\t<slot name=\"%s\">\n\t\t\t<slotoption name=\"%s\"/>\n\t\t</slot>\n",
			dialect.Escape(s), dialect.Escape(s))
	}
}

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
		writeField(bw, v, projection.FieldMerge, "merge", ex)
		writeField(bw, v, projection.FieldRegion, "region", ex)
		writeField(bw, v, projection.FieldOffset, "offset", ex)
		writeField(bw, v, projection.FieldBios, "bios", ex)
		writeField(bw, v, projection.FieldStatus, "status", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.Disk:
		fmt.Fprintf(bw, "\t\t<disk name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldMD5, "md5", ex)
		writeField(bw, v, projection.FieldSHA1, "sha1", ex)
		writeField(bw, v, projection.FieldMerge, "merge", ex)
		writeField(bw, v, projection.FieldRegion, "region", ex)
		writeField(bw, v, projection.FieldIndex, "index", ex)
		writeField(bw, v, projection.FieldWritable, "writable", ex)
		writeField(bw, v, projection.FieldStatus, "status", ex)
		writeField(bw, v, projection.FieldOptional, "optional", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.BiosSet:
		fmt.Fprintf(bw, "\t\t<biosset name=\"%s\"", dialect.Escape(v.Name()))
		writeField(bw, v, projection.FieldDescription, "description", ex)
		writeField(bw, v, projection.FieldDefault, "default", ex)
		fmt.Fprint(bw, "/>\n")
	case *item.Sample:
		fmt.Fprintf(bw, "\t\t<sample name=\"%s\"/>\n", dialect.Escape(v.Name()))
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
