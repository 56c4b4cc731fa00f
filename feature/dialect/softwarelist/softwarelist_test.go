package softwarelist

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

const sampleList = `<?xml version="1.0"?>
<softwarelist name="a2600" description="Atari 2600 cartridges">
	<software name="pitfall" supported="yes">
		<description>Pitfall!</description>
		<year>1982</year>
		<publisher>Activision</publisher>
		<info name="serial" value="AX-018"/>
		<part name="cart" interface="a2600_cart">
			<feature name="slot" value="a26_standard"/>
			<dataarea name="rom" size="4096">
				<rom name="pitfall.bin" size="4096" crc="deadbeef" sha1="aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"/>
			</dataarea>
		</part>
	</software>
	<software name="solaris">
		<description>Solaris</description>
		<part name="cdrom1" interface="cdrom">
			<diskarea name="cdrom">
				<disk name="solaris" sha1="bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"/>
			</diskarea>
		</part>
	</software>
	<software name="lostgame">
		<description>Lost Game</description>
	</software>
</softwarelist>
`

func newCatalog() *catalog.Catalog {
	return catalog.New(catalog.Options{Mode: catalog.BucketGameName, Norename: true})
}

func TestParseSoftwareList(t *testing.T) {
	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(sampleList), c)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "a2600", c.Header.Name)

	rom := c.Bucket("pitfall/pitfall.bin")[0].(*item.Rom)
	require.NotNil(t, rom.Software())
	sw := rom.Software()
	assert.Equal(t, item.TriYes, sw.Supported)
	assert.Equal(t, "Activision", sw.Publisher)
	assert.Equal(t, []item.Pair{{Name: "serial", Value: "AX-018"}}, sw.Infos)
	assert.Equal(t, "cart", sw.PartName)
	assert.Equal(t, "a2600_cart", sw.PartInterface)
	assert.Equal(t, []item.Pair{{Name: "slot", Value: "a26_standard"}}, sw.Features)
	assert.Equal(t, "rom", sw.AreaName)
	assert.Equal(t, int64(4096), sw.AreaSize)

	disk := c.Bucket("solaris/solaris")[0].(*item.Disk)
	require.NotNil(t, disk.Area)
	assert.Equal(t, "cdrom", disk.Area.Name)
	require.NotNil(t, disk.DiskPart)
	assert.Equal(t, "cdrom1", disk.DiskPart.Name)

	// A software block without areas survives as a Blank.
	blank := c.Bucket("lostgame/")[0]
	assert.Equal(t, item.KindBlank, blank.Kind())
}

func TestSoftwareListRoundTrip(t *testing.T) {
	in := newCatalog()
	r := NewReader(dialect.Options{})
	_, err := r.Parse(context.Background(), strings.NewReader(sampleList), in)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = NewWriter(dialect.Options{}).Write(context.Background(), &buf, in)
	require.NoError(t, err)

	out := newCatalog()
	_, err = r.Parse(context.Background(), strings.NewReader(buf.String()), out)
	require.NoError(t, err)

	assert.Equal(t, in.Len(), out.Len())

	rom := out.Bucket("pitfall/pitfall.bin")[0].(*item.Rom)
	assert.Equal(t, "deadbeef", rom.CRC)
	assert.Equal(t, "cart", rom.Software().PartName)
	assert.Equal(t, int64(4096), rom.Software().AreaSize)
}
