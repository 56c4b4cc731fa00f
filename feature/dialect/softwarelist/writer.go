package softwarelist

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/core/utils"
	"datforge/feature/dialect"
	"datforge/feature/projection"
)

// Writer serializes a catalog as a MAME software list.
type Writer struct {
	opts dialect.Options
}

// NewWriter returns a Writer using the given options.
func NewWriter(opts dialect.Options) *Writer {
	return &Writer{opts: opts}
}

// Write emits one software block per machine in natural key order. Each
// item carries its part/area structure in its own part element.
func (w *Writer) Write(ctx context.Context, out io.Writer, c *catalog.Catalog) (int, error) {
	bw := bufio.NewWriter(out)

	fmt.Fprint(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<softwarelist name=\"%s\" description=\"%s\">\n",
		dialect.Escape(c.Header.Name), dialect.Escape(c.Header.Description))

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
					fmt.Fprint(bw, "\t</software>\n")
				}
				w.openSoftware(bw, it)
				current = name
				open = true
			}
			if w.writeItem(bw, it) {
				count++
			}
		}
	}
	if open {
		fmt.Fprint(bw, "\t</software>\n")
	}
	fmt.Fprint(bw, "</softwarelist>\n")

	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("write softwarelist: %w", err)
	}
	return count, nil
}

func (w *Writer) openSoftware(bw *bufio.Writer, it item.Item) {
	m := it.Machine()
	if m == nil {
		m = &item.Machine{}
	}
	fmt.Fprintf(bw, "\t<software name=\"%s\"", dialect.Escape(m.Name))
	if !m.SelfReferential(m.CloneOf) && m.CloneOf != "" {
		fmt.Fprintf(bw, " cloneof=\"%s\"", dialect.Escape(m.CloneOf))
	}
	if sw := it.Software(); sw != nil {
		if v := sw.Supported.String(); v != "" {
			fmt.Fprintf(bw, " supported=\"%s\"", v)
		}
	}
	fmt.Fprint(bw, ">\n")

	if m.Description != "" {
		fmt.Fprintf(bw, "\t\t<description>%s</description>\n", dialect.Escape(m.Description))
	}
	if m.Year != "" {
		fmt.Fprintf(bw, "\t\t<year>%s</year>\n", dialect.Escape(m.Year))
	}
	if sw := it.Software(); sw != nil {
		if sw.Publisher != "" {
			fmt.Fprintf(bw, "\t\t<publisher>%s</publisher>\n", dialect.Escape(sw.Publisher))
		}
		for _, p := range sw.Infos {
			fmt.Fprintf(bw, "\t\t<info name=\"%s\" value=\"%s\"/>\n",
				dialect.Escape(p.Name), dialect.Escape(p.Value))
		}
	}
}

func (w *Writer) writeItem(bw *bufio.Writer, it item.Item) bool {
	switch v := it.(type) {
	case *item.Rom:
		if w.opts.IgnoreBlanks && dialect.SkipBlank(v) {
			return false
		}
		sw := v.Software()
		w.openPart(bw, sw, nil)
		areaAttrs := ""
		if sw != nil && sw.AreaSize != utils.SizeUnknown {
			areaAttrs = fmt.Sprintf(" size=\"%d\"", sw.AreaSize)
		}
		fmt.Fprintf(bw, "\t\t\t<dataarea name=\"%s\"%s>\n", dialect.Escape(areaName(sw, "rom")), areaAttrs)
		fmt.Fprintf(bw, "\t\t\t\t<rom name=\"%s\"", dialect.Escape(v.Name()))
		w.writeField(bw, v, projection.FieldSize, "size")
		w.writeField(bw, v, projection.FieldCRC, "crc")
		w.writeField(bw, v, projection.FieldMD5, "md5")
		w.writeField(bw, v, projection.FieldSHA1, "sha1")
		w.writeField(bw, v, projection.FieldSHA256, "sha256")
		w.writeField(bw, v, projection.FieldOffset, "offset")
		w.writeField(bw, v, projection.FieldStatus, "status")
		fmt.Fprint(bw, "/>\n\t\t\t</dataarea>\n\t\t</part>\n")
	case *item.Disk:
		w.openPart(bw, v.Software(), v.DiskPart)
		name := "cdrom"
		if v.Area != nil && v.Area.Name != "" {
			name = v.Area.Name
		}
		fmt.Fprintf(bw, "\t\t\t<diskarea name=\"%s\">\n", dialect.Escape(name))
		fmt.Fprintf(bw, "\t\t\t\t<disk name=\"%s\"", dialect.Escape(v.Name()))
		w.writeField(bw, v, projection.FieldMD5, "md5")
		w.writeField(bw, v, projection.FieldSHA1, "sha1")
		w.writeField(bw, v, projection.FieldWritable, "writeable")
		w.writeField(bw, v, projection.FieldStatus, "status")
		fmt.Fprint(bw, "/>\n\t\t\t</diskarea>\n\t\t</part>\n")
	default:
		// Blanks and variants the format cannot express add nothing
		// beyond the software block itself.
		return false
	}
	return true
}

// openPart starts the part element for one item, preferring the disk's
// own Part sub-object over the envelope.
func (w *Writer) openPart(bw *bufio.Writer, sw *item.SoftwareMeta, part *item.Part) {
	name, iface := "", ""
	var features []item.Pair
	if sw != nil {
		name, iface, features = sw.PartName, sw.PartInterface, sw.Features
	}
	if part != nil {
		name, iface, features = part.Name, part.Interface, part.Features
	}
	if name == "" {
		name = "rom"
	}
	fmt.Fprintf(bw, "\t\t<part name=\"%s\"", dialect.Escape(name))
	if iface != "" {
		fmt.Fprintf(bw, " interface=\"%s\"", dialect.Escape(iface))
	}
	fmt.Fprint(bw, ">\n")
	for _, f := range features {
		fmt.Fprintf(bw, "\t\t\t<feature name=\"%s\" value=\"%s\"/>\n",
			dialect.Escape(f.Name), dialect.Escape(f.Value))
	}
}

func areaName(sw *item.SoftwareMeta, fallback string) string {
	if sw != nil && sw.AreaName != "" {
		return sw.AreaName
	}
	return fallback
}

func (w *Writer) writeField(bw *bufio.Writer, it item.Item, f projection.ItemField, attr string) {
	if v, ok := projection.Get(it, f, w.opts.Exclude); ok {
		fmt.Fprintf(bw, " %s=\"%s\"", attr, dialect.Escape(v))
	}
}
