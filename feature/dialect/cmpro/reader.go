package cmpro

import (
	"context"
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
	dialect.RegisterParser(dialect.ClrMamePro, func(o dialect.Options) dialect.Parser {
		return NewReader(o)
	})
	dialect.RegisterWriter(dialect.ClrMamePro, func(o dialect.Options) dialect.Writer {
		return NewWriter(o)
	})
}

// Reader streams clrmamepro text into a catalog.
type Reader struct {
	opts dialect.Options
	log  *zap.Logger
}

// NewReader returns a Reader using the given options.
func NewReader(opts dialect.Options) *Reader {
	return &Reader{opts: opts, log: opts.Log()}
}

// Parse walks top-level blocks: clrmamepro/romcenter header blocks and
// game/machine/set/resource machine blocks. Anything else is skipped in
// balance, and truncated input stops the walk with what was collected.
func (r *Reader) Parse(ctx context.Context, input io.Reader, c *catalog.Catalog) (int, error) {
	lx := newLexer(input)
	count := 0

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		tok := lx.next()
		if tok.kind == tokEOF {
			return count, nil
		}
		if tok.kind != tokWord {
			continue
		}
		switch strings.ToLower(tok.text) {
		case "clrmamepro", "romcenter":
			r.parseHeader(lx, c)
		case "game", "machine", "set":
			count += r.parseMachine(lx, c, false)
		case "resource":
			count += r.parseMachine(lx, c, true)
		default:
			// Unknown top-level word; if it opens a block, skip it whole.
			if next := lx.next(); next.kind == tokOpen {
				skipBlock(lx)
			}
		}
	}
}

// skipBlock consumes tokens until the block opened before the call is
// balanced again.
func skipBlock(lx *lexer) {
	depth := 1
	for depth > 0 {
		switch lx.next().kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokEOF:
			return
		}
	}
}

func (r *Reader) parseHeader(lx *lexer, c *catalog.Catalog) {
	if lx.next().kind != tokOpen {
		return
	}
	var h catalog.Header
	for {
		tok := lx.next()
		if tok.kind == tokEOF || tok.kind == tokClose {
			break
		}
		if tok.kind != tokWord {
			continue
		}
		val := lx.next()
		if val.kind != tokWord {
			if val.kind == tokOpen {
				skipBlock(lx)
			}
			continue
		}
		switch strings.ToLower(tok.text) {
		case "name":
			h.Name = val.text
		case "description":
			h.Description = val.text
		case "rootdir":
			h.RootDir = val.text
		case "category":
			h.Category = val.text
		case "version":
			h.Version = val.text
		case "date":
			h.Date = val.text
		case "author":
			h.Author = val.text
		case "email":
			h.Email = val.text
		case "homepage":
			h.Homepage = val.text
		case "url":
			h.URL = val.text
		case "comment":
			h.Comment = val.text
		case "forcemerging":
			h.ForceMerging = val.text
		case "forcenodump":
			h.ForceNodump = val.text
		case "forcepacking":
			h.ForcePacking = val.text
		}
	}
	c.Header.Merge(h)
}

func (r *Reader) parseMachine(lx *lexer, c *catalog.Catalog, bios bool) int {
	if lx.next().kind != tokOpen {
		return 0
	}
	m := &item.Machine{}
	if bios {
		m.Flags |= item.FlagBios
	}

	count := 0
	for {
		tok := lx.next()
		if tok.kind == tokEOF || tok.kind == tokClose {
			break
		}
		if tok.kind != tokWord {
			continue
		}
		switch strings.ToLower(tok.text) {
		case "name":
			m.Name = wordOf(lx)
		case "description":
			m.Description = wordOf(lx)
		case "year":
			m.Year = wordOf(lx)
		case "manufacturer":
			m.Manufacturer = wordOf(lx)
		case "comment":
			m.Comment = wordOf(lx)
		case "cloneof":
			m.CloneOf = wordOf(lx)
		case "romof":
			m.RomOf = wordOf(lx)
		case "sampleof":
			m.SampleOf = wordOf(lx)
		case "sourcefile":
			m.SourceFile = wordOf(lx)
		case "rebuildto":
			m.RebuildTo = wordOf(lx)
		case "rom":
			count += r.parseRom(lx, c, m)
		case "disk":
			count += r.parseDisk(lx, c, m)
		case "sample":
			if name := wordOf(lx); name != "" {
				s := item.NewSample(name)
				s.SetMachine(m)
				s.SetSource(r.opts.Source)
				c.Insert(s)
				count++
			}
		case "archive":
			if name := wordOf(lx); name != "" {
				a := item.NewArchive(name)
				a.SetMachine(m)
				a.SetSource(r.opts.Source)
				c.Insert(a)
				count++
			}
		default:
			// Unknown key: consume its value, or skip its block.
			if next := lx.next(); next.kind == tokOpen {
				skipBlock(lx)
			}
		}
	}
	if count == 0 {
		c.Insert(item.NewBlank(m))
		count = 1
	}
	return count
}

// wordOf returns the next word token's text, or "". Blocks following an
// expected value are skipped in balance.
func wordOf(lx *lexer) string {
	tok := lx.next()
	if tok.kind == tokWord {
		return tok.text
	}
	if tok.kind == tokOpen {
		skipBlock(lx)
	}
	return ""
}

// attrs reads a ( key value ... ) block into a map, with duplicate keys
// keeping their first value.
func attrs(lx *lexer) map[string]string {
	out := make(map[string]string)
	if lx.next().kind != tokOpen {
		return out
	}
	for {
		tok := lx.next()
		if tok.kind == tokEOF || tok.kind == tokClose {
			return out
		}
		if tok.kind != tokWord {
			continue
		}
		key := strings.ToLower(tok.text)
		val := lx.next()
		if val.kind == tokEOF || val.kind == tokClose {
			return out
		}
		if val.kind == tokOpen {
			skipBlock(lx)
			continue
		}
		if _, dup := out[key]; !dup {
			out[key] = val.text
		}
	}
}

func (r *Reader) parseRom(lx *lexer, c *catalog.Catalog, m *item.Machine) int {
	a := attrs(lx)
	size := utils.ToSize(a["size"])

	switch strings.ToLower(a["loadflag"]) {
	case "continue", "ignore":
		c.AmendLastSize(c.LastKey(), size)
		return 1
	}
	if a["name"] == "" {
		return 0
	}

	rom := item.NewRom(a["name"])
	rom.Size = size
	rom.SetHash(hashes.CRC32, a["crc"])
	rom.SetHash(hashes.MD5, a["md5"])
	rom.SetHash(hashes.SHA1, a["sha1"])
	rom.SetHash(hashes.SHA256, a["sha256"])
	rom.SetHash(hashes.SHA384, a["sha384"])
	rom.SetHash(hashes.SHA512, a["sha512"])
	rom.Merge = a["merge"]
	rom.Region = a["region"]
	rom.Offset = a["offs"]
	if rom.Offset == "" {
		rom.Offset = a["offset"]
	}
	rom.Date = a["date"]

	status := a["status"]
	if status == "" {
		status = a["flags"]
	}
	rom.Status = item.ParseDumpStatus(status)

	rom.SetMachine(m)
	rom.SetSource(r.opts.Source)
	c.Insert(rom)
	return 1
}

func (r *Reader) parseDisk(lx *lexer, c *catalog.Catalog, m *item.Machine) int {
	a := attrs(lx)
	if a["name"] == "" {
		return 0
	}
	d := item.NewDisk(a["name"])
	d.SetHash(hashes.MD5, a["md5"])
	d.SetHash(hashes.SHA1, a["sha1"])
	d.Merge = a["merge"]
	d.Region = a["region"]
	d.Index = a["index"]

	status := a["status"]
	if status == "" {
		status = a["flags"]
	}
	d.Status = item.ParseDumpStatus(status)

	d.SetMachine(m)
	d.SetSource(r.opts.Source)
	c.Insert(d)
	return 1
}
