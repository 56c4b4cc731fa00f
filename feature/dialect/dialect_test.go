package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/utils"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		sample string
		want   Format
	}{
		{"logiqx", `<?xml version="1.0"?><!DOCTYPE datafile><datafile>`, Logiqx},
		{"listxml", `<?xml version="1.0"?><mame build="0.263">`, ListXML},
		{"softwarelist", `<softwarelist name="a2600">`, SoftwareList},
		{"attractmode", "#Name;Title;Emulator", AttractMode},
		{"cmpro header", `clrmamepro ( name "x" )`, ClrMamePro},
		{"cmpro bare game", `game (`, ClrMamePro},
		{"leading bom and space", "\xef\xbb\xbf  <datafile>", Logiqx},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Detect([]byte(tc.sample))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := Detect(nil)
		assert.Error(t, err)
	})
	t.Run("unknown xml root", func(t *testing.T) {
		_, err := Detect([]byte(`<html>`))
		assert.Error(t, err)
	})
	t.Run("plain text", func(t *testing.T) {
		_, err := Detect([]byte(`hello world`))
		assert.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	sentinel := Format("sentinel")
	RegisterParser(sentinel, func(Options) Parser { return nil })
	RegisterWriter(sentinel, func(Options) Writer { return nil })

	_, err := NewParser(sentinel, Options{})
	assert.NoError(t, err)
	_, err = NewWriter(sentinel, Options{})
	assert.NoError(t, err)

	_, err = NewParser(Format("nope"), Options{})
	assert.Error(t, err)
	_, err = NewWriter(Format("nope"), Options{})
	assert.Error(t, err)
}

func TestNullRom(t *testing.T) {
	marker := item.NewRom("null")
	marker.CRC = "null"
	require.Equal(t, utils.SizeUnknown, marker.Size)
	assert.True(t, IsNullRom(marker))

	regular := item.NewRom("a.bin")
	regular.Size = 10
	regular.CRC = "deadbeef"
	assert.False(t, IsNullRom(regular))

	t.Run("xml normalization", func(t *testing.T) {
		out := NormalizeNullRom(marker, false)
		assert.Equal(t, "null", out.Name())
		assert.Equal(t, int64(0), out.Size)
		assert.Equal(t, hashes.CRC32.Zero(), out.CRC)
		assert.Equal(t, "null", marker.CRC, "input is untouched")
	})

	t.Run("text normalization", func(t *testing.T) {
		out := NormalizeNullRom(marker, true)
		assert.Equal(t, "-", out.Name())
		assert.Equal(t, int64(0), out.Size)
	})
}

func TestSkipBlank(t *testing.T) {
	zero := item.NewRom("z")
	zero.Size = 0
	assert.True(t, SkipBlank(zero))

	unknown := item.NewRom("u")
	assert.True(t, SkipBlank(unknown))

	sized := item.NewRom("s")
	sized.Size = 1
	assert.False(t, SkipBlank(sized))

	assert.False(t, SkipBlank(item.NewSample("smp")), "only Rom items are blanks")
}
