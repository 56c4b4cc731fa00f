package projection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"datforge/core/catalog"
	"datforge/core/item"
)

// Profile is the on-disk form of a run's field configuration: which
// fields writers must exclude and which fields a cleaning pass nulls out.
type Profile struct {
	// Exclude lists item fields writers omit from output.
	Exclude []string `yaml:"exclude"`
	// Remove lists fields a cleaning pass nulls out on every item.
	Remove RemoveSpec `yaml:"remove"`
}

// RemoveSpec separates item-level from machine-level removals.
type RemoveSpec struct {
	Item    []string `yaml:"item"`
	Machine []string `yaml:"machine"`
}

// LoadProfile reads a YAML projection profile. Unknown field names are
// rejected so a typo cannot silently keep a field alive.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	for _, n := range p.Exclude {
		if _, ok := ParseItemField(n); !ok {
			return nil, fmt.Errorf("profile: unknown item field %q", n)
		}
	}
	for _, n := range p.Remove.Item {
		if _, ok := ParseItemField(n); !ok {
			return nil, fmt.Errorf("profile: unknown item field %q", n)
		}
	}
	for _, n := range p.Remove.Machine {
		if _, ok := ParseMachineField(n); !ok {
			return nil, fmt.Errorf("profile: unknown machine field %q", n)
		}
	}
	return &p, nil
}

// ExcludeSet returns the writer exclude set.
func (p *Profile) ExcludeSet() FieldSet {
	if p == nil {
		return nil
	}
	return NewFieldSet(p.Exclude...)
}

// Apply runs the profile's removals over every item in the catalog.
func (p *Profile) Apply(c *catalog.Catalog) {
	if p == nil || (len(p.Remove.Item) == 0 && len(p.Remove.Machine) == 0) {
		return
	}
	var itemFields []ItemField
	for _, n := range p.Remove.Item {
		if f, ok := ParseItemField(n); ok {
			itemFields = append(itemFields, f)
		}
	}
	var machFields []MachineField
	for _, n := range p.Remove.Machine {
		if f, ok := ParseMachineField(n); ok {
			machFields = append(machFields, f)
		}
	}
	c.Each(func(_ string, it item.Item) {
		RemoveFields(it, itemFields, machFields)
	})
}
