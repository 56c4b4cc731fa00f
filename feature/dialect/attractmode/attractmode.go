// Package attractmode reads and writes AttractMode romlists: one
// semicolon-separated row per machine with a fixed 17-column schema.
package attractmode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/dialect"
)

func init() {
	dialect.RegisterParser(dialect.AttractMode, func(o dialect.Options) dialect.Parser {
		return NewReader(o)
	})
	dialect.RegisterWriter(dialect.AttractMode, func(o dialect.Options) dialect.Writer {
		return NewWriter(o)
	})
}

// columns is the fixed AttractMode schema, in order.
const columns = "#Name;Title;Emulator;CloneOf;Year;Manufacturer;Category;Players;Rotation;Control;Status;DisplayCount;DisplayType;AltRomname;AltTitle;Extra;Buttons"

// columnCount is the number of fields per row.
const columnCount = 17

// Reader streams an AttractMode romlist into a catalog.
type Reader struct {
	opts dialect.Options
	log  *zap.Logger
}

// NewReader returns a Reader using the given options.
func NewReader(opts dialect.Options) *Reader {
	return &Reader{opts: opts, log: opts.Log()}
}

// Parse reads one machine per row. Each row contributes a Rom named
// after the machine's zip, with no size or hashes; rows with too few
// columns are skipped.
func (r *Reader) Parse(ctx context.Context, input io.Reader, c *catalog.Catalog) (int, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, ";")
		if len(cols) < 3 {
			r.log.Debug("skipping short row", zap.Int("columns", len(cols)))
			continue
		}
		for len(cols) < columnCount {
			cols = append(cols, "")
		}

		m := &item.Machine{
			Name:         cols[0],
			Description:  cols[1],
			CloneOf:      cols[3],
			Year:         cols[4],
			Manufacturer: cols[5],
			Category:     cols[6],
		}
		rom := item.NewRom(cols[0] + ".zip")
		rom.SetMachine(m)
		rom.SetSource(r.opts.Source)
		c.Insert(rom)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read romlist: %w", err)
	}
	return count, nil
}

// Writer serializes a catalog as an AttractMode romlist.
type Writer struct {
	opts dialect.Options
}

// NewWriter returns a Writer using the given options.
func NewWriter(opts dialect.Options) *Writer {
	return &Writer{opts: opts}
}

// Write emits the header line and one row per machine, in natural key
// order. The empty-folder marker Rom is written under a dash name.
func (w *Writer) Write(ctx context.Context, out io.Writer, c *catalog.Catalog) (int, error) {
	bw := bufio.NewWriter(out)
	fmt.Fprintln(bw, columns)

	count := 0
	seen := make(map[string]struct{})

	for _, key := range c.SortedKeys() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		for _, it := range c.Bucket(key) {
			if w.opts.IgnoreBlanks && dialect.SkipBlank(it) {
				continue
			}
			m := it.Machine()
			if m == nil {
				continue
			}
			name := m.Name
			if rom, ok := it.(*item.Rom); ok && dialect.IsNullRom(rom) {
				name = "-"
			}
			// One row per machine, whatever its item count.
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			cloneOf := m.CloneOf
			if m.SelfReferential(cloneOf) {
				cloneOf = ""
			}
			row := make([]string, columnCount)
			row[0] = name
			row[1] = m.Description
			row[3] = cloneOf
			row[4] = m.Year
			row[5] = m.Manufacturer
			row[6] = m.Category
			fmt.Fprintln(bw, strings.Join(row, ";"))
			count++
		}
	}
	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("write romlist: %w", err)
	}
	return count, nil
}
