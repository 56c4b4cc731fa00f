// Package softwarelist reads and writes the MAME software list XML
// format, whose part/dataarea/diskarea structure rides along on items as
// a SoftwareList envelope.
package softwarelist

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
	dialect.RegisterParser(dialect.SoftwareList, func(o dialect.Options) dialect.Parser {
		return NewReader(o)
	})
	dialect.RegisterWriter(dialect.SoftwareList, func(o dialect.Options) dialect.Writer {
		return NewWriter(o)
	})
}

// Reader streams a software list into a catalog.
type Reader struct {
	opts dialect.Options
	log  *zap.Logger
}

// NewReader returns a Reader using the given options.
func NewReader(opts dialect.Options) *Reader {
	return &Reader{opts: opts, log: opts.Log()}
}

// Parse walks the list software by software.
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
		case "softwarelist":
			c.Header.Merge(catalog.Header{
				Name:        dialect.Attr(se, "name"),
				Description: dialect.Attr(se, "description"),
			})
		case "software":
			count += r.parseSoftware(dec, se, c)
		default:
			_ = dec.Skip()
		}
	}
	return count, nil
}

// software-level state shared by every item of one software block.
type softwareCtx struct {
	machine   *item.Machine
	supported item.TriState
	publisher string
	infos     []item.Pair
}

// envelope builds a fresh SoftwareList envelope for one item.
func (s *softwareCtx) envelope(part *item.Part, areaName string, areaSize int64) *item.SoftwareMeta {
	sw := item.NewSoftwareMeta()
	sw.Supported = s.supported
	sw.Publisher = s.publisher
	sw.Infos = append([]item.Pair(nil), s.infos...)
	if part != nil {
		sw.PartName = part.Name
		sw.PartInterface = part.Interface
		sw.Features = append([]item.Pair(nil), part.Features...)
	}
	sw.AreaName = areaName
	sw.AreaSize = areaSize
	return sw
}

func (r *Reader) parseSoftware(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog) int {
	sc := &softwareCtx{
		machine: &item.Machine{
			Name:    dialect.Attr(start, "name"),
			CloneOf: dialect.Attr(start, "cloneof"),
		},
		supported: item.ParseTriState(dialect.Attr(start, "supported")),
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
				sc.machine.Description = dialect.ElementText(dec, t)
			case "year":
				sc.machine.Year = dialect.ElementText(dec, t)
			case "publisher":
				sc.publisher = dialect.ElementText(dec, t)
			case "info":
				sc.infos = append(sc.infos, item.Pair{
					Name:  dialect.Attr(t, "name"),
					Value: dialect.Attr(t, "value"),
				})
				_ = dec.Skip()
			case "part":
				count += r.parsePart(dec, t, c, sc)
			default:
				_ = dec.Skip()
			}
		case xml.EndElement:
			if t.Name == start.Name {
				if count == 0 {
					blank := item.NewBlank(sc.machine)
					blank.SetSoftware(sc.envelope(nil, "", utils.SizeUnknown))
					blank.SetSource(r.opts.Source)
					c.Insert(blank)
					count = 1
				}
				return count
			}
		}
	}
	return count
}

// parsePart consumes one part element as a bounded sub-cursor: its
// features first, then dataarea/diskarea children holding the items.
func (r *Reader) parsePart(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog, sc *softwareCtx) int {
	part := &item.Part{
		Name:      dialect.Attr(start, "name"),
		Interface: dialect.Attr(start, "interface"),
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
			case "feature":
				part.Features = append(part.Features, item.Pair{
					Name:  dialect.Attr(t, "name"),
					Value: dialect.Attr(t, "value"),
				})
				_ = dec.Skip()
			case "dataarea":
				count += r.parseDataArea(dec, t, c, sc, part)
			case "diskarea":
				count += r.parseDiskArea(dec, t, c, sc, part)
			default:
				_ = dec.Skip()
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return count
			}
		}
	}
	return count
}

func (r *Reader) parseDataArea(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog, sc *softwareCtx, part *item.Part) int {
	areaName := dialect.Attr(start, "name")
	areaSize := utils.ToSize(dialect.Attr(start, "size"))

	count := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if strings.ToLower(t.Name.Local) == "rom" {
				count += r.insertRom(c, sc, part, areaName, areaSize, t)
			}
			_ = dec.Skip()
		case xml.EndElement:
			if t.Name == start.Name {
				return count
			}
		}
	}
	return count
}

func (r *Reader) insertRom(c *catalog.Catalog, sc *softwareCtx, part *item.Part, areaName string, areaSize int64, se xml.StartElement) int {
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
	rom.SetHash(hashes.SHA256, dialect.Attr(se, "sha256"))
	rom.Offset = dialect.Attr(se, "offset")
	rom.Status = item.ParseDumpStatus(dialect.Attr(se, "status"))
	rom.SetMachine(sc.machine)
	rom.SetSoftware(sc.envelope(part, areaName, areaSize))
	rom.SetSource(r.opts.Source)
	c.Insert(rom)
	return 1
}

func (r *Reader) parseDiskArea(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog, sc *softwareCtx, part *item.Part) int {
	areaName := dialect.Attr(start, "name")

	count := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if strings.ToLower(t.Name.Local) == "disk" {
				if name := dialect.Attr(t, "name"); name != "" {
					d := item.NewDisk(name)
					d.SetHash(hashes.MD5, dialect.Attr(t, "md5"))
					d.SetHash(hashes.SHA1, dialect.Attr(t, "sha1"))
					d.Writable = item.ParseTriState(dialect.Attr(t, "writeable"))
					d.Status = item.ParseDumpStatus(dialect.Attr(t, "status"))
					d.Area = &item.DiskArea{Name: areaName}
					d.DiskPart = part.Clone()
					d.SetMachine(sc.machine)
					d.SetSoftware(sc.envelope(part, areaName, utils.SizeUnknown))
					d.SetSource(r.opts.Source)
					c.Insert(d)
					count++
				}
			}
			_ = dec.Skip()
		case xml.EndElement:
			if t.Name == start.Name {
				return count
			}
		}
	}
	return count
}
