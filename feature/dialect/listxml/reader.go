// Package listxml reads and writes the MAME -listxml machine format.
package listxml

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"go.uber.org/zap"

	"datforge/core/catalog"
	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/utils"
	"datforge/feature/dialect"
)

func init() {
	dialect.RegisterParser(dialect.ListXML, func(o dialect.Options) dialect.Parser {
		return NewReader(o)
	})
	dialect.RegisterWriter(dialect.ListXML, func(o dialect.Options) dialect.Writer {
		return NewWriter(o)
	})
}

// Reader streams MAME list XML into a catalog.
type Reader struct {
	opts dialect.Options
	log  *zap.Logger
}

// NewReader returns a Reader using the given options.
func NewReader(opts dialect.Options) *Reader {
	return &Reader{opts: opts, log: opts.Log()}
}

// Parse walks the document machine by machine. device_ref and
// slotoption elements feed the machine's device and slot-option lists
// rather than becoming items.
func (r *Reader) Parse(ctx context.Context, input io.Reader, c *catalog.Catalog) (int, error) {
	dec := xml.NewDecoder(input)
	dec.Strict = false

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		tok, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				r.log.Warn("stopping at malformed input", zap.Error(err))
			}
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "mame":
			build := dialect.Attr(se, "build")
			c.Header.Merge(catalog.Header{
				Name:        "MAME",
				Description: strings.TrimSpace("MAME " + build),
				Version:     build,
			})
		case "machine", "game":
			count += r.parseMachine(dec, se, c)
		default:
			_ = dec.Skip()
		}
	}
	return count, nil
}

func (r *Reader) parseMachine(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog) int {
	m := &item.Machine{
		Name:       dialect.Attr(start, "name"),
		SourceFile: dialect.Attr(start, "sourcefile"),
		CloneOf:    dialect.Attr(start, "cloneof"),
		RomOf:      dialect.Attr(start, "romof"),
		SampleOf:   dialect.Attr(start, "sampleof"),
		Runnable:   item.ParseTriState(dialect.Attr(start, "runnable")),
	}
	if utils.ToBool(dialect.Attr(start, "isbios")) {
		m.Flags |= item.FlagBios
	}
	if utils.ToBool(dialect.Attr(start, "isdevice")) {
		m.Flags |= item.FlagDevice
	}
	if utils.ToBool(dialect.Attr(start, "ismechanical")) {
		m.Flags |= item.FlagMechanical
	}

	count := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "description":
				m.Description = dialect.ElementText(dec, t)
			case "year":
				m.Year = dialect.ElementText(dec, t)
			case "manufacturer":
				m.Manufacturer = dialect.ElementText(dec, t)
			case "device_ref":
				m.AddDevice(dialect.Attr(t, "name"))
				_ = dec.Skip()
			case "slot":
				r.parseSlot(dec, t, m)
			case "slotoption":
				m.AddSlotOption(dialect.Attr(t, "name"))
				_ = dec.Skip()
			case "biosset":
				b := item.NewBiosSet(dialect.Attr(t, "name"))
				b.Description = dialect.Attr(t, "description")
				b.Default = item.ParseTriState(dialect.Attr(t, "default"))
				b.SetMachine(m)
				b.SetSource(r.opts.Source)
				c.Insert(b)
				count++
				_ = dec.Skip()
			case "rom":
				count += r.insertRom(c, m, t)
				_ = dec.Skip()
			case "disk":
				name := dialect.Attr(t, "name")
				if name != "" {
					d := item.NewDisk(name)
					d.SetHash(hashes.MD5, dialect.Attr(t, "md5"))
					d.SetHash(hashes.SHA1, dialect.Attr(t, "sha1"))
					d.Merge = dialect.Attr(t, "merge")
					d.Region = dialect.Attr(t, "region")
					d.Index = dialect.Attr(t, "index")
					d.Writable = item.ParseTriState(dialect.Attr(t, "writable"))
					d.Status = item.ParseDumpStatus(dialect.Attr(t, "status"))
					d.Optional = item.ParseTriState(dialect.Attr(t, "optional"))
					d.SetMachine(m)
					d.SetSource(r.opts.Source)
					c.Insert(d)
					count++
				}
				_ = dec.Skip()
			case "sample":
				if name := dialect.Attr(t, "name"); name != "" {
					s := item.NewSample(name)
					s.SetMachine(m)
					s.SetSource(r.opts.Source)
					c.Insert(s)
					count++
				}
				_ = dec.Skip()
			default:
				_ = dec.Skip()
			}
		case xml.EndElement:
			if t.Name == start.Name {
				if count == 0 {
					c.Insert(item.NewBlank(m))
					count = 1
				}
				return count
			}
		}
	}
	if count == 0 {
		c.Insert(item.NewBlank(m))
		count = 1
	}
	return count
}

// parseSlot consumes a slot element as a bounded sub-cursor, collecting
// its slotoption children before resuming the machine walk.
func (r *Reader) parseSlot(dec *xml.Decoder, start xml.StartElement, m *item.Machine) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if strings.ToLower(t.Name.Local) == "slotoption" {
				m.AddSlotOption(dialect.Attr(t, "name"))
			}
			_ = dec.Skip()
		case xml.EndElement:
			if t.Name == start.Name {
				return
			}
		}
	}
}

func (r *Reader) insertRom(c *catalog.Catalog, m *item.Machine, se xml.StartElement) int {
	size := utils.ToSize(dialect.Attr(se, "size"))
	switch strings.ToLower(dialect.Attr(se, "loadflag")) {
	case "continue", "ignore":
		c.AmendLastSize(c.LastKey(), size)
		return 1
	}

	name := dialect.Attr(se, "name")
	if name == "" {
		return 0
	}
	rom := item.NewRom(name)
	rom.Size = size
	rom.SetHash(hashes.CRC32, dialect.Attr(se, "crc"))
	rom.SetHash(hashes.MD5, dialect.Attr(se, "md5"))
	rom.SetHash(hashes.SHA1, dialect.Attr(se, "sha1"))
	rom.Merge = dialect.Attr(se, "merge")
	rom.Region = dialect.Attr(se, "region")
	rom.Offset = dialect.Attr(se, "offset")
	rom.Bios = dialect.Attr(se, "bios")
	rom.Status = item.ParseDumpStatus(dialect.Attr(se, "status"))
	rom.SetMachine(m)
	rom.SetSource(r.opts.Source)
	c.Insert(rom)
	return 1
}
