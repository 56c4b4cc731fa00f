package listxml

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/feature/dialect"
)

const sampleListXML = `<?xml version="1.0"?>
<mame build="0.250">
	<machine name="puckman" sourcefile="pacman.cpp">
		<description>PuckMan</description>
		<year>1980</year>
		<device_ref name="z80"/>
		<device_ref name="namco51"/>
		<device_ref name="z80"/>
		<slot name="joy">
			<slotoption name="joy8way"/>
		</slot>
		<biosset name="default" description="Standard" default="yes"/>
		<rom name="pm1.bin" size="4096" crc="deadbeef"/>
		<disk name="pm" sha1="cccccccccccccccccccccccccccccccccccccccc"/>
	</machine>
	<machine name="nodev" isdevice="yes" runnable="no"/>
</mame>
`

func newCatalog() *catalog.Catalog {
	return catalog.New(catalog.Options{Mode: catalog.BucketGameName, Norename: true})
}

func TestParseListXML(t *testing.T) {
	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(sampleListXML), c)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, "0.250", c.Header.Version)
	assert.Equal(t, "MAME", c.Header.Name)

	rom := c.Bucket("puckman/pm1.bin")[0].(*item.Rom)
	m := rom.Machine()
	assert.Equal(t, []string{"z80", "namco51"}, m.Devices, "device refs dedup, order kept")
	assert.Equal(t, []string{"joy8way"}, m.SlotOptions)

	dev := c.Bucket("nodev/")[0]
	assert.Equal(t, item.KindBlank, dev.Kind())
	assert.True(t, dev.Machine().Flags.Has(item.FlagDevice))
	assert.Equal(t, item.TriNo, dev.Machine().Runnable)
}

func TestListXMLRoundTrip(t *testing.T) {
	in := newCatalog()
	r := NewReader(dialect.Options{})
	_, err := r.Parse(context.Background(), strings.NewReader(sampleListXML), in)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = NewWriter(dialect.Options{}).Write(context.Background(), &buf, in)
	require.NoError(t, err)

	out := newCatalog()
	_, err = r.Parse(context.Background(), strings.NewReader(buf.String()), out)
	require.NoError(t, err)

	assert.Equal(t, in.Len(), out.Len())
	assert.Equal(t, in.Header.Version, out.Header.Version)

	rom := out.Bucket("puckman/pm1.bin")[0].(*item.Rom)
	assert.Equal(t, "deadbeef", rom.CRC)
	assert.Equal(t, []string{"z80", "namco51"}, rom.Machine().Devices)
}
