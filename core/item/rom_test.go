package item

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"datforge/core/hashes"
	"datforge/core/utils"
)

func romWith(name string, size int64, crc, md5, sha1 string) *Rom {
	r := NewRom(name)
	r.Size = size
	r.SetHash(hashes.CRC32, crc)
	r.SetHash(hashes.MD5, md5)
	r.SetHash(hashes.SHA1, sha1)
	return r
}

func TestRomEquals_SharedHash(t *testing.T) {
	sha := strings.Repeat("a", 40)

	t.Run("shared sha1 matches", func(t *testing.T) {
		a := romWith("a.bin", 100, "", "", sha)
		b := romWith("b.bin", 100, "deadbeef", "", sha)
		assert.True(t, a.Equals(b))
		assert.True(t, b.Equals(a))
	})

	t.Run("shared hash differs", func(t *testing.T) {
		a := romWith("a.bin", 100, "", "", sha)
		b := romWith("a.bin", 100, "", "", strings.Repeat("b", 40))
		assert.False(t, a.Equals(b))
	})

	t.Run("unknown size never blocks", func(t *testing.T) {
		a := romWith("a.bin", utils.SizeUnknown, "deadbeef", "", "")
		b := romWith("a.bin", 512, "deadbeef", "", "")
		assert.True(t, a.Equals(b))
	})

	t.Run("known sizes must agree", func(t *testing.T) {
		a := romWith("a.bin", 100, "deadbeef", "", "")
		b := romWith("a.bin", 101, "deadbeef", "", "")
		assert.False(t, a.Equals(b))
	})
}

func TestRomEquals_DisjointHashCoverage(t *testing.T) {
	// One side has only CRC, the other only SHA1: no shared kind, so the
	// pair must not merge no matter what names and sizes say.
	a := romWith("same.bin", 100, "deadbeef", "", "")
	b := romWith("same.bin", 100, "", "", strings.Repeat("d", 40))
	assert.False(t, a.Equals(b))
	assert.False(t, b.Equals(a))
}

func TestRomEquals_NoHashesAtAll(t *testing.T) {
	a := romWith("same.bin", 100, "", "", "")
	b := romWith("same.bin", 100, "", "", "")
	assert.False(t, a.Equals(b))
}

func TestRomEquals_Nodump(t *testing.T) {
	t.Run("both nodump same name", func(t *testing.T) {
		a := romWith("x.bin", 10, "", "", "")
		a.Status = StatusNodump
		b := romWith("x.bin", 10, "", "", "")
		b.Status = StatusNodump
		assert.True(t, a.Equals(b))
	})

	t.Run("nodump vs real hashes", func(t *testing.T) {
		a := romWith("x.bin", 10, "deadbeef", "", "")
		a.Status = StatusNodump
		b := romWith("x.bin", 10, "deadbeef", "", "")
		assert.False(t, a.Equals(b))
		assert.False(t, b.Equals(a))
	})

	t.Run("nodump with hash present", func(t *testing.T) {
		a := romWith("x.bin", 10, "deadbeef", "", "")
		a.Status = StatusNodump
		b := romWith("x.bin", 10, "", "", "")
		b.Status = StatusNodump
		assert.False(t, a.Equals(b))
	})
}

func TestRomEquals_DifferentVariant(t *testing.T) {
	r := romWith("a", 10, "deadbeef", "", "")
	d := NewDisk("a")
	d.SetHash(hashes.MD5, strings.Repeat("a", 32))
	assert.False(t, r.Equals(d))
	assert.False(t, d.Equals(r))
}

func TestRomFillMissing(t *testing.T) {
	sha := strings.Repeat("c", 40)
	a := romWith("a.bin", 100, "deadbeef", "", "")
	b := romWith("a.bin", 100, "cafebabe", "", sha)

	a.FillMissing(b)
	assert.Equal(t, "deadbeef", a.CRC, "populated hash is never overwritten")
	assert.Equal(t, sha, a.SHA1, "missing hash is filled")

	// Idempotent: a second application changes nothing.
	snapshot := *a
	a.FillMissing(b)
	assert.Equal(t, snapshot, *a)
}

func TestRomClone_Independence(t *testing.T) {
	a := romWith("a.bin", 100, "deadbeef", "", "")
	a.SetMachine(&Machine{Name: "mach", Devices: []string{"z80"}})
	a.SetSource(Source{Index: 2, Name: "in.dat"})

	c := a.Clone().(*Rom)
	c.SetName("other.bin")
	c.Machine().Name = "changed"
	c.Machine().AddDevice("m68k")

	assert.Equal(t, "a.bin", a.Name())
	assert.Equal(t, "mach", a.Machine().Name)
	assert.Equal(t, []string{"z80"}, a.Machine().Devices)
	assert.Equal(t, Source{Index: 2, Name: "in.dat"}, c.Source())
}

func TestDiskEquals(t *testing.T) {
	md5 := strings.Repeat("1", 32)
	sha := strings.Repeat("2", 40)

	a := NewDisk("game")
	a.SetHash(hashes.MD5, md5)
	b := NewDisk("game")
	b.SetHash(hashes.MD5, md5)
	b.SetHash(hashes.SHA1, sha)
	assert.True(t, a.Equals(b))

	// Disjoint coverage on disks is rejected too.
	c := NewDisk("game")
	c.SetHash(hashes.SHA1, sha)
	assert.False(t, a.Equals(c))
}
