package item

// Sample is a named audio sample reference.
type Sample struct {
	base
}

// NewSample returns a Sample with the given name.
func NewSample(name string) *Sample {
	return &Sample{base: base{name: name}}
}

// Kind returns KindSample.
func (s *Sample) Kind() Kind { return KindSample }

// Clone returns a deep copy.
func (s *Sample) Clone() Item {
	out := *s
	out.base = s.cloneBase()
	return &out
}

// Equals matches another sample by name.
func (s *Sample) Equals(other Item) bool {
	o, ok := other.(*Sample)
	return ok && s.name == o.name
}

// Archive is a named archive reference.
type Archive struct {
	base
}

// NewArchive returns an Archive with the given name.
func NewArchive(name string) *Archive {
	return &Archive{base: base{name: name}}
}

// Kind returns KindArchive.
func (a *Archive) Kind() Kind { return KindArchive }

// Clone returns a deep copy.
func (a *Archive) Clone() Item {
	out := *a
	out.base = a.cloneBase()
	return &out
}

// Equals matches another archive by name.
func (a *Archive) Equals(other Item) bool {
	o, ok := other.(*Archive)
	return ok && a.name == o.name
}

// BiosSet names a selectable BIOS within a machine.
type BiosSet struct {
	base

	Description string
	Default     TriState
}

// NewBiosSet returns a BiosSet with the given name.
func NewBiosSet(name string) *BiosSet {
	return &BiosSet{base: base{name: name}}
}

// Kind returns KindBiosSet.
func (b *BiosSet) Kind() Kind { return KindBiosSet }

// Clone returns a deep copy.
func (b *BiosSet) Clone() Item {
	out := *b
	out.base = b.cloneBase()
	return &out
}

// Equals matches another BIOS set by name, description and default flag.
func (b *BiosSet) Equals(other Item) bool {
	o, ok := other.(*BiosSet)
	return ok && b.name == o.name &&
		b.Description == o.Description && b.Default == o.Default
}

// Release describes a regional release of a machine.
type Release struct {
	base

	Region   string
	Language string
	Date     string
	Default  TriState
}

// NewRelease returns a Release with the given name.
func NewRelease(name string) *Release {
	return &Release{base: base{name: name}}
}

// Kind returns KindRelease.
func (r *Release) Kind() Kind { return KindRelease }

// Clone returns a deep copy.
func (r *Release) Clone() Item {
	out := *r
	out.base = r.cloneBase()
	return &out
}

// Equals matches another release on all payload fields.
func (r *Release) Equals(other Item) bool {
	o, ok := other.(*Release)
	return ok && r.name == o.name && r.Region == o.Region &&
		r.Language == o.Language && r.Date == o.Date && r.Default == o.Default
}

// Blank is a placeholder carrying a machine that contained no parseable
// items, so the machine still appears in output.
type Blank struct {
	base
}

// NewBlank returns a Blank owned by the given machine.
func NewBlank(m *Machine) *Blank {
	return &Blank{base: base{machine: m}}
}

// Kind returns KindBlank.
func (b *Blank) Kind() Kind { return KindBlank }

// Clone returns a deep copy.
func (b *Blank) Clone() Item {
	out := *b
	out.base = b.cloneBase()
	return &out
}

// Equals matches another blank owned by the same machine name.
func (b *Blank) Equals(other Item) bool {
	o, ok := other.(*Blank)
	if !ok {
		return false
	}
	if b.machine == nil || o.machine == nil {
		return b.machine == o.machine
	}
	return b.machine.Name == o.machine.Name
}
