package item

import (
	"slices"

	"datforge/core/utils"
)

// Kind tags the concrete variant behind an Item.
type Kind uint8

const (
	KindRom Kind = iota
	KindDisk
	KindSample
	KindArchive
	KindBiosSet
	KindRelease
	KindBlank
)

// String returns the dialect element name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRom:
		return "rom"
	case KindDisk:
		return "disk"
	case KindSample:
		return "sample"
	case KindArchive:
		return "archive"
	case KindBiosSet:
		return "biosset"
	case KindRelease:
		return "release"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Pair is an ordered name/value attribute used by SoftwareList info and
// feature lists.
type Pair struct {
	Name  string
	Value string
}

// SoftwareMeta carries the SoftwareList-only envelope an item may have.
// It is nil for items that did not come from a SoftwareList source.
type SoftwareMeta struct {
	Supported     TriState
	Publisher     string
	Infos         []Pair
	PartName      string
	PartInterface string
	Features      []Pair
	AreaName      string
	// AreaSize is utils.SizeUnknown when the dataarea had no size.
	AreaSize int64
}

// NewSoftwareMeta returns an envelope with an unknown area size.
func NewSoftwareMeta() *SoftwareMeta {
	return &SoftwareMeta{AreaSize: utils.SizeUnknown}
}

// Clone returns a deep copy of the envelope.
func (s *SoftwareMeta) Clone() *SoftwareMeta {
	if s == nil {
		return nil
	}
	out := *s
	out.Infos = slices.Clone(s.Infos)
	out.Features = slices.Clone(s.Features)
	return &out
}

// Item is the closed sum type over the seven catalog entry variants.
// Equals implements the variant's duplicate-detection rule; two items of
// different variants are never duplicates.
type Item interface {
	// Kind tags the concrete variant.
	Kind() Kind
	// Name returns the item's name.
	Name() string
	// SetName replaces the item's name.
	SetName(string)
	// Machine returns the owning machine, never nil after parsing.
	Machine() *Machine
	// SetMachine replaces the owning machine.
	SetMachine(*Machine)
	// Source identifies the input the item came from.
	Source() Source
	// SetSource records the originating input.
	SetSource(Source)
	// Software returns the SoftwareList envelope, or nil.
	Software() *SoftwareMeta
	// SetSoftware attaches a SoftwareList envelope.
	SetSoftware(*SoftwareMeta)
	// Clone returns a deep value copy including the owned Machine.
	Clone() Item
	// Equals applies the variant's duplicate rule against other.
	Equals(Item) bool
}

// base carries the fields every variant shares. Variants embed it by
// value; Clone implementations deep copy the owned pointers.
type base struct {
	name     string
	machine  *Machine
	source   Source
	software *SoftwareMeta
}

func (b *base) Name() string                { return b.name }
func (b *base) SetName(n string)            { b.name = n }
func (b *base) Machine() *Machine           { return b.machine }
func (b *base) SetMachine(m *Machine)       { b.machine = m }
func (b *base) Source() Source              { return b.source }
func (b *base) SetSource(s Source)          { b.source = s }
func (b *base) Software() *SoftwareMeta     { return b.software }
func (b *base) SetSoftware(s *SoftwareMeta) { b.software = s }

// cloneBase returns a deep copy of the shared fields.
func (b *base) cloneBase() base {
	return base{
		name:     b.name,
		machine:  b.machine.Clone(),
		source:   b.source,
		software: b.software.Clone(),
	}
}
