package logiqx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/catalog"
	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/utils"
	"datforge/feature/dialect"
	"datforge/feature/projection"
)

func TestRoundTrip(t *testing.T) {
	in := newCatalog()
	r := NewReader(dialect.Options{})
	_, err := r.Parse(context.Background(), strings.NewReader(sampleDat), in)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewWriter(dialect.Options{})
	_, err = w.Write(context.Background(), &buf, in)
	require.NoError(t, err)

	out := newCatalog()
	_, err = r.Parse(context.Background(), strings.NewReader(buf.String()), out)
	require.NoError(t, err)

	type tuple struct {
		machine, name, crc, md5, sha1 string
	}
	collect := func(c *catalog.Catalog) map[tuple]bool {
		set := make(map[tuple]bool)
		c.Each(func(_ string, it item.Item) {
			tp := tuple{machine: it.Machine().Name, name: it.Name()}
			if rom, ok := it.(*item.Rom); ok {
				tp.crc, tp.md5, tp.sha1 = rom.CRC, rom.MD5, rom.SHA1
			}
			set[tp] = true
		})
		return set
	}
	assert.Equal(t, collect(in), collect(out))
	assert.Equal(t, in.Header.Name, out.Header.Name)
}

func TestWriterSuppressesSelfReference(t *testing.T) {
	c := newCatalog()
	rom := item.NewRom("a.bin")
	rom.Size = 1
	rom.SetHash(hashes.CRC32, "deadbeef")
	rom.SetMachine(&item.Machine{Name: "Puckman", CloneOf: "puckman", RomOf: "other"})
	c.Insert(rom)

	var buf bytes.Buffer
	_, err := NewWriter(dialect.Options{}).Write(context.Background(), &buf, c)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "cloneof")
	assert.Contains(t, buf.String(), `romof="other"`)
}

func TestWriterNormalizesNullRom(t *testing.T) {
	c := newCatalog()
	rom := item.NewRom("null")
	rom.CRC = "null"
	rom.SetMachine(&item.Machine{Name: "emptydir"})
	c.Insert(rom)

	var buf bytes.Buffer
	_, err := NewWriter(dialect.Options{}).Write(context.Background(), &buf, c)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `size="0"`)
	assert.Contains(t, buf.String(), `crc="00000000"`)
	assert.NotContains(t, buf.String(), `crc="null"`)
}

func TestWriterExcludeAndIgnoreBlanks(t *testing.T) {
	c := newCatalog()

	full := item.NewRom("a.bin")
	full.Size = 128
	full.SetHash(hashes.CRC32, "deadbeef")
	full.SetHash(hashes.MD5, strings.Repeat("1", 32))
	full.SetMachine(&item.Machine{Name: "m"})
	c.Insert(full)

	blank := item.NewRom("empty.bin")
	blank.Size = utils.SizeUnknown
	blank.SetMachine(&item.Machine{Name: "m"})
	c.Insert(blank)

	var buf bytes.Buffer
	w := NewWriter(dialect.Options{
		Exclude:      projection.NewFieldSet("md5"),
		IgnoreBlanks: true,
	})
	n, err := w.Write(context.Background(), &buf, c)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), `crc="deadbeef"`)
	assert.NotContains(t, buf.String(), "md5")
	assert.NotContains(t, buf.String(), "empty.bin")
}
