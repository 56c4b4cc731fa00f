package attractmode

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/catalog"
	"datforge/core/item"
	"datforge/core/utils"
	"datforge/feature/dialect"
)

const sampleList = `#Name;Title;Emulator;CloneOf;Year;Manufacturer;Category;Players;Rotation;Control;Status;DisplayCount;DisplayType;AltRomname;AltTitle;Extra;Buttons
puckman;PuckMan (Japan);mame;;1980;Namco;Maze;1;0;joystick;good;1;raster;;;;2
pacman;Pac-Man (US);mame;puckman;1980;Midway;Maze;1;0;joystick;good;1;raster;;;;2

short;row
`

func newCatalog() *catalog.Catalog {
	return catalog.New(catalog.Options{Mode: catalog.BucketGameName, Norename: true})
}

func TestParseRomlist(t *testing.T) {
	c := newCatalog()
	r := NewReader(dialect.Options{})
	n, err := r.Parse(context.Background(), strings.NewReader(sampleList), c)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "header and short rows are skipped")

	rom := c.Bucket("puckman/puckman.zip")[0].(*item.Rom)
	assert.Equal(t, utils.SizeUnknown, rom.Size)
	m := rom.Machine()
	assert.Equal(t, "PuckMan (Japan)", m.Description)
	assert.Equal(t, "Namco", m.Manufacturer)
	assert.Equal(t, "Maze", m.Category)

	clone := c.Bucket("pacman/pacman.zip")[0].(*item.Rom)
	assert.Equal(t, "puckman", clone.Machine().CloneOf)
}

func TestRomlistRoundTrip(t *testing.T) {
	in := newCatalog()
	r := NewReader(dialect.Options{})
	_, err := r.Parse(context.Background(), strings.NewReader(sampleList), in)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := NewWriter(dialect.Options{}).Write(context.Background(), &buf, in)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, strings.HasPrefix(buf.String(), "#Name;Title;"))

	out := newCatalog()
	_, err = r.Parse(context.Background(), strings.NewReader(buf.String()), out)
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
	assert.Equal(t, "puckman", out.Bucket("pacman/pacman.zip")[0].Machine().CloneOf)
}
