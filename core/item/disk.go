package item

import (
	"slices"

	"datforge/core/hashes"
)

// DiskArea is the SoftwareList diskarea container a disk may sit in.
type DiskArea struct {
	Name string
}

// Part is the SoftwareList part a disk belongs to.
type Part struct {
	Name      string
	Interface string
	Features  []Pair
}

// Clone returns a deep copy of the part.
func (p *Part) Clone() *Part {
	if p == nil {
		return nil
	}
	out := *p
	out.Features = slices.Clone(p.Features)
	return &out
}

// Disk is a CHD or similar media image belonging to a machine.
// Disks carry no CRC and no size; identity rests on the wider hashes.
type Disk struct {
	base

	MD5    string
	SHA1   string
	SHA256 string
	SHA384 string
	SHA512 string

	Merge  string
	Region string
	Index  string

	Writable TriState
	Status   DumpStatus
	Optional TriState

	// Area and DiskPart are only set for SoftwareList sources.
	Area     *DiskArea
	DiskPart *Part
}

// NewDisk returns a Disk with the given name.
func NewDisk(name string) *Disk {
	return &Disk{base: base{name: name}}
}

// Kind returns KindDisk.
func (d *Disk) Kind() Kind { return KindDisk }

// Clone returns a deep copy.
func (d *Disk) Clone() Item {
	out := *d
	out.base = d.cloneBase()
	if d.Area != nil {
		area := *d.Area
		out.Area = &area
	}
	out.DiskPart = d.DiskPart.Clone()
	return &out
}

// Hash returns the stored value for the given hash kind. Disks never
// carry a CRC.
func (d *Disk) Hash(k hashes.Kind) string {
	switch k {
	case hashes.MD5:
		return d.MD5
	case hashes.SHA1:
		return d.SHA1
	case hashes.SHA256:
		return d.SHA256
	case hashes.SHA384:
		return d.SHA384
	case hashes.SHA512:
		return d.SHA512
	default:
		return ""
	}
}

// SetHash normalizes and stores a hash value for the given kind.
func (d *Disk) SetHash(k hashes.Kind, v string) {
	v = hashes.Normalize(k, v)
	switch k {
	case hashes.MD5:
		d.MD5 = v
	case hashes.SHA1:
		d.SHA1 = v
	case hashes.SHA256:
		d.SHA256 = v
	case hashes.SHA384:
		d.SHA384 = v
	case hashes.SHA512:
		d.SHA512 = v
	}
}

// HasAnyHash reports whether at least one hash field is populated.
func (d *Disk) HasAnyHash() bool {
	return d.MD5 != "" || d.SHA1 != "" || d.SHA256 != "" ||
		d.SHA384 != "" || d.SHA512 != ""
}

// Equals implements the hash-aware duplicate rule for disks. It mirrors
// Rom.Equals except that disks have no size to compare.
func (d *Disk) Equals(other Item) bool {
	o, ok := other.(*Disk)
	if !ok {
		return false
	}

	if d.Status == StatusNodump || o.Status == StatusNodump {
		return d.Status == StatusNodump && o.Status == StatusNodump &&
			d.name == o.name &&
			!d.HasAnyHash() && !o.HasAnyHash()
	}

	if !d.HasAnyHash() || !o.HasAnyHash() {
		return false
	}

	shared := false
	for _, k := range hashes.Kinds() {
		a, b := d.Hash(k), o.Hash(k)
		if a == "" || b == "" {
			continue
		}
		if a != b {
			return false
		}
		shared = true
	}
	return shared
}

// FillMissing copies every hash other has that the receiver lacks.
func (d *Disk) FillMissing(other *Disk) {
	if other == nil {
		return
	}
	for _, k := range hashes.Kinds() {
		if d.Hash(k) == "" && other.Hash(k) != "" {
			d.SetHash(k, other.Hash(k))
		}
	}
}
