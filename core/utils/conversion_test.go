package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"decimal", "1024", 1024},
		{"zero", "0", 0},
		{"hex lower", "0x1a", 26},
		{"hex upper prefix", "0X1A", 26},
		{"empty", "", SizeUnknown},
		{"garbage", "banana", SizeUnknown},
		{"bad hex", "0xzz", SizeUnknown},
		{"whitespace", " 42 ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSize(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool("partial"))
}
