package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineDeviceLists(t *testing.T) {
	m := &Machine{Name: "puckman"}
	m.AddDevice("z80")
	m.AddDevice("namco51")
	m.AddDevice("z80")
	m.AddDevice("")
	assert.Equal(t, []string{"z80", "namco51"}, m.Devices)

	m.AddSlotOption("ctrl1")
	m.AddSlotOption("ctrl1")
	assert.Equal(t, []string{"ctrl1"}, m.SlotOptions)
}

func TestMachineSelfReferential(t *testing.T) {
	m := &Machine{Name: "Puckman", CloneOf: "puckman"}
	assert.True(t, m.SelfReferential(m.CloneOf))
	assert.False(t, m.SelfReferential("pacman"))
	assert.False(t, m.SelfReferential(""))
}

func TestMachineClone(t *testing.T) {
	m := &Machine{Name: "a", Devices: []string{"z80"}}
	c := m.Clone()
	c.Devices[0] = "m68k"
	c.Name = "b"
	assert.Equal(t, "a", m.Name)
	assert.Equal(t, "z80", m.Devices[0])
}

func TestParseTriState(t *testing.T) {
	assert.Equal(t, TriYes, ParseTriState("yes"))
	assert.Equal(t, TriYes, ParseTriState("Yes"))
	assert.Equal(t, TriNo, ParseTriState("no"))
	assert.Equal(t, TriUnknown, ParseTriState(""))
	assert.Equal(t, TriUnknown, ParseTriState("partial"))
	assert.Equal(t, "", TriUnknown.String())
	assert.Equal(t, "yes", TriYes.String())
}

func TestParseDumpStatus(t *testing.T) {
	assert.Equal(t, StatusNodump, ParseDumpStatus("nodump"))
	assert.Equal(t, StatusBadDump, ParseDumpStatus("baddump"))
	assert.Equal(t, StatusVerified, ParseDumpStatus("Verified"))
	assert.Equal(t, StatusNone, ParseDumpStatus("good"))
	assert.Equal(t, StatusNone, ParseDumpStatus(""))
}
