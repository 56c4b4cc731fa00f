// Package logiqx reads and writes Logiqx XML datafiles, including
// SuperDAT inputs whose dir elements encode a directory hierarchy.
package logiqx

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
	dialect.RegisterParser(dialect.Logiqx, func(o dialect.Options) dialect.Parser {
		return NewReader(o)
	})
	dialect.RegisterWriter(dialect.Logiqx, func(o dialect.Options) dialect.Writer {
		return NewWriter(o)
	})
}

// Reader streams a Logiqx datafile into a catalog.
type Reader struct {
	opts dialect.Options
	log  *zap.Logger
}

// NewReader returns a Reader using the given options.
func NewReader(opts dialect.Options) *Reader {
	return &Reader{opts: opts, log: opts.Log()}
}

// dirFrame tracks one open dir element of a SuperDAT hierarchy.
type dirFrame struct {
	name     string
	machines int
}

// Parse walks the document with a forward-only cursor. Unrecognized
// elements are skipped, malformed trailing input stops the walk with
// whatever was collected, and a machine block without parseable items
// contributes a Blank so the machine survives into output.
func (r *Reader) Parse(ctx context.Context, input io.Reader, c *catalog.Catalog) (int, error) {
	dec := xml.NewDecoder(input)
	dec.Strict = false

	var dirs []dirFrame
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

		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "datafile":
				// Root: descend.
			case "header":
				r.parseHeader(dec, t, c)
			case "dir":
				dirs = append(dirs, dirFrame{name: dialect.Attr(t, "name")})
			case "machine", "game":
				n := r.parseMachine(dec, t, c, dirPath(dirs))
				count += n
				for i := range dirs {
					dirs[i].machines++
				}
			default:
				_ = dec.Skip()
			}
		case xml.EndElement:
			if strings.ToLower(t.Name.Local) == "dir" && len(dirs) > 0 {
				frame := dirs[len(dirs)-1]
				if frame.machines == 0 {
					r.insertEmptyDir(c, dirPath(dirs))
					count++
					for i := range dirs {
						dirs[i].machines++
					}
				}
				dirs = dirs[:len(dirs)-1]
			}
		}
	}
	return count, nil
}

func dirPath(dirs []dirFrame) string {
	if len(dirs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d.name != "" {
			parts = append(parts, d.name)
		}
	}
	return strings.Join(parts, "/")
}

// insertEmptyDir synthesizes the placeholder Rom named "null" for a dir
// that closed without contributing any machine, so the hierarchy entry
// is not silently dropped.
func (r *Reader) insertEmptyDir(c *catalog.Catalog, path string) {
	m := &item.Machine{Name: r.effectiveName(path, "")}
	rom := item.NewRom("null")
	rom.CRC = "null"
	rom.SetMachine(m)
	rom.SetSource(r.opts.Source)
	c.Insert(rom)
}

// effectiveName joins the dir path and machine name, keeping only the
// leaf segment unless the keep-full-path option is on.
func (r *Reader) effectiveName(dir, name string) string {
	full := name
	if dir != "" {
		full = dir + "/" + name
		if name == "" {
			full = dir
		}
	}
	if r.opts.KeepFullPath {
		return full
	}
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		return full[idx+1:]
	}
	return full
}

func (r *Reader) parseHeader(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog) {
	var h catalog.Header
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "name":
				h.Name = dialect.ElementText(dec, t)
			case "description":
				h.Description = dialect.ElementText(dec, t)
			case "rootdir":
				h.RootDir = dialect.ElementText(dec, t)
			case "category":
				h.Category = dialect.ElementText(dec, t)
			case "version":
				h.Version = dialect.ElementText(dec, t)
			case "date":
				h.Date = dialect.ElementText(dec, t)
			case "author":
				h.Author = dialect.ElementText(dec, t)
			case "email":
				h.Email = dialect.ElementText(dec, t)
			case "homepage":
				h.Homepage = dialect.ElementText(dec, t)
			case "url":
				h.URL = dialect.ElementText(dec, t)
			case "comment":
				h.Comment = dialect.ElementText(dec, t)
			case "type":
				h.Type = dialect.ElementText(dec, t)
			case "clrmamepro", "romcenter":
				if v := dialect.Attr(t, "forcemerging"); v != "" {
					h.ForceMerging = v
				}
				if v := dialect.Attr(t, "forcenodump"); v != "" {
					h.ForceNodump = v
				}
				if v := dialect.Attr(t, "forcepacking"); v != "" {
					h.ForcePacking = v
				}
				_ = dec.Skip()
			default:
				_ = dec.Skip()
			}
		case xml.EndElement:
			if t.Name == start.Name {
				c.Header.Merge(h)
				return
			}
		}
	}
	c.Header.Merge(h)
}

// parseMachine consumes one machine or game element and returns the
// number of item records processed for it.
func (r *Reader) parseMachine(dec *xml.Decoder, start xml.StartElement, c *catalog.Catalog, dir string) int {
	m := machineFromAttrs(start)
	m.Name = r.effectiveName(dir, m.Name)

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
			case "category":
				m.Category = dialect.ElementText(dec, t)
			case "comment":
				m.Comment = dialect.ElementText(dec, t)
			case "rom":
				count += r.insertRom(c, m, t)
				_ = dec.Skip()
			case "disk":
				count += insertDisk(c, m, t, r.opts.Source)
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
			case "archive":
				if name := dialect.Attr(t, "name"); name != "" {
					a := item.NewArchive(name)
					a.SetMachine(m)
					a.SetSource(r.opts.Source)
					c.Insert(a)
					count++
				}
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
			case "release":
				rel := item.NewRelease(dialect.Attr(t, "name"))
				rel.Region = dialect.Attr(t, "region")
				rel.Language = dialect.Attr(t, "language")
				rel.Date = dialect.Attr(t, "date")
				rel.Default = item.ParseTriState(dialect.Attr(t, "default"))
				rel.SetMachine(m)
				rel.SetSource(r.opts.Source)
				c.Insert(rel)
				count++
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

// insertRom handles one rom element, including load-flag continuation:
// a "continue" or "ignore" record folds its size into the previously
// inserted item instead of creating a new one.
func (r *Reader) insertRom(c *catalog.Catalog, m *item.Machine, se xml.StartElement) int {
	size := utils.ToSize(dialect.Attr(se, "size"))

	switch strings.ToLower(dialect.Attr(se, "loadflag")) {
	case "continue", "ignore":
		c.AmendLastSize(c.LastKey(), size)
		return 1
	}

	name := dialect.Attr(se, "name")
	if name == "" {
		r.log.Debug("skipping rom without name", zap.String("machine", m.Name))
		return 0
	}

	rom := romFromAttrs(se)
	rom.Size = size
	rom.SetMachine(m)
	rom.SetSource(r.opts.Source)
	c.Insert(rom)
	return 1
}

// machineFromAttrs builds a Machine from a machine/game start element.
func machineFromAttrs(se xml.StartElement) *item.Machine {
	m := &item.Machine{
		Name:       dialect.Attr(se, "name"),
		SourceFile: dialect.Attr(se, "sourcefile"),
		CloneOf:    dialect.Attr(se, "cloneof"),
		RomOf:      dialect.Attr(se, "romof"),
		SampleOf:   dialect.Attr(se, "sampleof"),
		Board:      dialect.Attr(se, "board"),
		RebuildTo:  dialect.Attr(se, "rebuildto"),
		Runnable:   item.ParseTriState(dialect.Attr(se, "runnable")),
	}
	if utils.ToBool(dialect.Attr(se, "isbios")) {
		m.Flags |= item.FlagBios
	}
	if utils.ToBool(dialect.Attr(se, "isdevice")) {
		m.Flags |= item.FlagDevice
	}
	if utils.ToBool(dialect.Attr(se, "ismechanical")) {
		m.Flags |= item.FlagMechanical
	}
	return m
}

// romFromAttrs builds a Rom from a rom element, reading dump status from
// the status attribute with the legacy flags attribute as fallback.
func romFromAttrs(se xml.StartElement) *item.Rom {
	rom := item.NewRom(dialect.Attr(se, "name"))
	rom.SetHash(hashes.CRC32, dialect.Attr(se, "crc"))
	rom.SetHash(hashes.MD5, dialect.Attr(se, "md5"))
	rom.SetHash(hashes.SHA1, dialect.Attr(se, "sha1"))
	rom.SetHash(hashes.SHA256, dialect.Attr(se, "sha256"))
	rom.SetHash(hashes.SHA384, dialect.Attr(se, "sha384"))
	rom.SetHash(hashes.SHA512, dialect.Attr(se, "sha512"))
	rom.Merge = dialect.Attr(se, "merge")
	rom.Region = dialect.Attr(se, "region")
	rom.Offset = dialect.Attr(se, "offset")
	rom.Bios = dialect.Attr(se, "bios")
	rom.Date = dialect.Attr(se, "date")
	rom.Inverted = item.ParseTriState(dialect.Attr(se, "inverted"))

	status := dialect.Attr(se, "status")
	if status == "" {
		status = dialect.Attr(se, "flags")
	}
	rom.Status = item.ParseDumpStatus(status)
	return rom
}

// insertDisk handles one disk element shared by the XML dialects.
func insertDisk(c *catalog.Catalog, m *item.Machine, se xml.StartElement, src item.Source) int {
	name := dialect.Attr(se, "name")
	if name == "" {
		return 0
	}
	d := diskFromAttrs(se)
	d.SetMachine(m)
	d.SetSource(src)
	c.Insert(d)
	return 1
}

// diskFromAttrs builds a Disk from a disk element.
func diskFromAttrs(se xml.StartElement) *item.Disk {
	d := item.NewDisk(dialect.Attr(se, "name"))
	d.SetHash(hashes.MD5, dialect.Attr(se, "md5"))
	d.SetHash(hashes.SHA1, dialect.Attr(se, "sha1"))
	d.SetHash(hashes.SHA256, dialect.Attr(se, "sha256"))
	d.Merge = dialect.Attr(se, "merge")
	d.Region = dialect.Attr(se, "region")
	d.Index = dialect.Attr(se, "index")
	d.Optional = item.ParseTriState(dialect.Attr(se, "optional"))

	writable := dialect.Attr(se, "writable")
	if writable == "" {
		writable = dialect.Attr(se, "writeable")
	}
	d.Writable = item.ParseTriState(writable)

	status := dialect.Attr(se, "status")
	if status == "" {
		status = dialect.Attr(se, "flags")
	}
	d.Status = item.ParseDumpStatus(status)
	return d
}
