package projection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datforge/core/catalog"
	"datforge/core/hashes"
	"datforge/core/item"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
exclude: [md5, sha256]
remove:
  item: [date]
  machine: [comment]
`)
	p, err := LoadProfile(path)
	require.NoError(t, err)

	set := p.ExcludeSet()
	assert.True(t, set.Has(FieldMD5))
	assert.True(t, set.Has(FieldSHA256))
	assert.False(t, set.Has(FieldCRC))
}

func TestLoadProfileRejectsUnknownField(t *testing.T) {
	path := writeProfile(t, "exclude: [sha1337]\n")
	_, err := LoadProfile(path)
	assert.ErrorContains(t, err, "sha1337")
}

func TestProfileApply(t *testing.T) {
	c := catalog.New(catalog.Options{Mode: catalog.BucketName, Norename: true})
	r := item.NewRom("a.bin")
	r.Size = 10
	r.SetHash(hashes.CRC32, "deadbeef")
	r.Date = "1999"
	r.SetMachine(&item.Machine{Name: "m", Comment: "note"})
	c.Insert(r)

	p := &Profile{Remove: RemoveSpec{Item: []string{"date"}, Machine: []string{"comment"}}}
	p.Apply(c)

	assert.Empty(t, r.Date)
	assert.Empty(t, r.Machine().Comment)
	assert.Equal(t, "deadbeef", r.CRC)
}
