package logiqx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/dialect"
)

const sampleDat = `<?xml version="1.0"?>
<datafile>
	<header>
		<name>Test Set</name>
		<description>Test Set (full)</description>
		<version>1.0</version>
		<clrmamepro forcemerging="split"/>
	</header>
	<machine name="puckman" sourcefile="pacman.cpp">
		<description>PuckMan (Japan)</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
		<rom name="pm1.bin" size="4096" crc="deadbeef" sha1="aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"/>
		<rom name="pm2.bin" size="0x1000" crc="cafebabe"/>
		<disk name="pm" sha1="bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"/>
		<sample name="pacman"/>
	</machine>
	<machine name="empty" cloneof="empty">
	</machine>
</datafile>
`

func newCatalog() *catalog.Catalog {
	return catalog.New(catalog.Options{Mode: catalog.BucketGameName, Norename: true})
}

func TestParseSample(t *testing.T) {
	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(sampleDat), c)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, "Test Set", c.Header.Name)
	assert.Equal(t, "split", c.Header.ForceMerging)

	bucket := c.Bucket("puckman/pm1.bin")
	require.Len(t, bucket, 1)
	rom := bucket[0].(*item.Rom)
	assert.Equal(t, int64(4096), rom.Size)
	assert.Equal(t, "deadbeef", rom.CRC)
	assert.Equal(t, "PuckMan (Japan)", rom.Machine().Description)

	// Hex size attribute.
	hexRom := c.Bucket("puckman/pm2.bin")[0].(*item.Rom)
	assert.Equal(t, int64(4096), hexRom.Size)

	// A machine without parseable items survives as a Blank.
	blank := c.Bucket("empty/")
	require.Len(t, blank, 1)
	assert.Equal(t, item.KindBlank, blank[0].Kind())
	assert.Equal(t, "empty", blank[0].Machine().Name)
}

func TestParseLoadFlagContinuation(t *testing.T) {
	const dat = `<datafile>
	<machine name="m">
		<rom name="a" size="10" crc="deadbeef"/>
		<rom loadflag="continue" size="5"/>
		<rom loadflag="ignore" size="0x3"/>
	</machine>
</datafile>`

	c := newCatalog()
	r := NewReader(dialect.Options{})
	_, err := r.Parse(context.Background(), strings.NewReader(dat), c)
	require.NoError(t, err)

	bucket := c.Bucket("m/a")
	require.Len(t, bucket, 1)
	assert.Equal(t, int64(18), bucket[0].(*item.Rom).Size)
	assert.Equal(t, 1, c.Len())
}

func TestParseSuperDATHierarchy(t *testing.T) {
	const dat = `<datafile>
	<dir name="Consoles">
		<dir name="NES">
			<game name="mario">
				<rom name="mario.nes" size="1" crc="deadbeef"/>
			</game>
		</dir>
		<dir name="SNES">
		</dir>
	</dir>
</datafile>`

	t.Run("keep full path", func(t *testing.T) {
		c := newCatalog()
		r := NewReader(dialect.Options{KeepFullPath: true})
		_, err := r.Parse(context.Background(), strings.NewReader(dat), c)
		require.NoError(t, err)

		bucket := c.Bucket("Consoles/NES/mario/mario.nes")
		require.Len(t, bucket, 1)

		// The empty SNES dir synthesizes the null placeholder.
		empty := c.Bucket("Consoles/SNES/null")
		require.Len(t, empty, 1)
		rom := empty[0].(*item.Rom)
		assert.Equal(t, "null", rom.CRC)
		assert.Equal(t, int64(-1), rom.Size)
	})

	t.Run("leaf only", func(t *testing.T) {
		c := newCatalog()
		r := NewReader(dialect.Options{})
		_, err := r.Parse(context.Background(), strings.NewReader(dat), c)
		require.NoError(t, err)
		require.Len(t, c.Bucket("mario/mario.nes"), 1)
	})
}

func TestParseSkipsUnknownElements(t *testing.T) {
	const dat = `<datafile>
	<mystery><deep attr="1"/></mystery>
	<machine name="m">
		<whatever/>
		<rom name="a" size="1" crc="deadbeef"/>
	</machine>
</datafile>`

	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(dat), c)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestParseTruncatedInput(t *testing.T) {
	// End-of-input with an open record is tolerated.
	const dat = `<datafile>
	<machine name="m">
		<rom name="a" size="1" crc="deadbeef"/>`

	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(dat), c)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
