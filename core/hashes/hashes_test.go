package hashes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   string
		want string
	}{
		{"crc lowercase kept", CRC32, "deadbeef", "deadbeef"},
		{"crc uppercased", CRC32, "DEADBEEF", "deadbeef"},
		{"crc 0x prefix stripped", CRC32, "0xDEADBEEF", "deadbeef"},
		{"crc quoted", CRC32, "\"deadbeef\"", "deadbeef"},
		{"crc wrong length", CRC32, "beef", ""},
		{"crc non-hex", CRC32, "deadbeeg", ""},
		{"null sentinel kept", CRC32, "null", "null"},
		{"empty", SHA1, "", ""},
		{"sha1 ok", SHA1, strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"sha1 crc-length rejected", SHA1, "deadbeef", ""},
		{"md5 ok", MD5, strings.Repeat("0", 32), strings.Repeat("0", 32)},
		{"sha512 ok", SHA512, strings.Repeat("f", 128), strings.Repeat("f", 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.kind, tt.in))
		})
	}
}

func TestKindProperties(t *testing.T) {
	assert.Equal(t, 8, CRC32.HexLen())
	assert.Equal(t, 32, MD5.HexLen())
	assert.Equal(t, 40, SHA1.HexLen())
	assert.Equal(t, 64, SHA256.HexLen())
	assert.Equal(t, 96, SHA384.HexLen())
	assert.Equal(t, 128, SHA512.HexLen())

	assert.Equal(t, "00000000", CRC32.Zero())
	assert.Equal(t, strings.Repeat("0", 40), SHA1.Zero())
	assert.Equal(t, "crc", CRC32.String())
	assert.Equal(t, "sha256", SHA256.String())
}

func TestConditionalEquals(t *testing.T) {
	assert.True(t, ConditionalEquals("", ""))
	assert.True(t, ConditionalEquals("deadbeef", ""))
	assert.True(t, ConditionalEquals("", "deadbeef"))
	assert.True(t, ConditionalEquals("deadbeef", "deadbeef"))
	assert.False(t, ConditionalEquals("deadbeef", "cafebabe"))
}
