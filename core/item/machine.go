package item

import (
	"slices"
	"strings"
)

// MachineFlag is a bit set describing what kind of machine this is.
type MachineFlag uint8

const (
	// FlagNone marks an ordinary machine.
	FlagNone MachineFlag = 0
	// FlagBios marks a BIOS set.
	FlagBios MachineFlag = 1 << iota
	// FlagDevice marks a device machine.
	FlagDevice
	// FlagMechanical marks a mechanical machine.
	FlagMechanical
)

// Has reports whether the flag set contains f.
func (m MachineFlag) Has(f MachineFlag) bool {
	return m&f != 0
}

// Machine carries the identity and lineage of a logical game or device.
// Items keep a pointer to their owning Machine; cloning an item deep
// copies it so catalogs never alias machine state across splits.
type Machine struct {
	// Name is the machine's identifier, possibly a joined directory path
	// in SuperDAT inputs.
	Name string
	// Description is the human-readable title.
	Description string
	Year         string
	Manufacturer string
	Category     string
	Comment      string
	// SourceFile is the dialect's sourcefile tag.
	SourceFile string
	Board      string
	RebuildTo  string

	// CloneOf, RomOf and SampleOf reference parent machines. A reference
	// equal to the machine's own name is suppressed at write time.
	CloneOf  string
	RomOf    string
	SampleOf string

	Flags    MachineFlag
	Runnable TriState

	// Devices lists referenced device names, insertion order preserved.
	Devices []string
	// SlotOptions lists slot-option device names, insertion order preserved.
	SlotOptions []string
}

// Clone returns a deep copy of the machine.
func (m *Machine) Clone() *Machine {
	if m == nil {
		return nil
	}
	out := *m
	out.Devices = slices.Clone(m.Devices)
	out.SlotOptions = slices.Clone(m.SlotOptions)
	return &out
}

// AddDevice appends a device reference unless it is already present.
func (m *Machine) AddDevice(name string) {
	if name == "" || slices.Contains(m.Devices, name) {
		return
	}
	m.Devices = append(m.Devices, name)
}

// AddSlotOption appends a slot-option name unless it is already present.
func (m *Machine) AddSlotOption(name string) {
	if name == "" || slices.Contains(m.SlotOptions, name) {
		return
	}
	m.SlotOptions = append(m.SlotOptions, name)
}

// SelfReferential reports whether ref points back at this machine,
// compared case-insensitively. Writers use it to suppress self-referential
// cloneof/romof/sampleof attributes.
func (m *Machine) SelfReferential(ref string) bool {
	return ref != "" && strings.EqualFold(ref, m.Name)
}

// Source identifies which input file an item came from and its priority
// within a batch. Lower indexes were seen earlier and win merges.
type Source struct {
	// Index is the zero-based position of the input in the run.
	Index int
	// Name is the input's display name, typically the file path.
	Name string
}
