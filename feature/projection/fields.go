package projection

import "strings"

// ItemField names a projectable field on an item variant. Not every
// variant carries every field; operations on absent fields are no-ops.
type ItemField string

const (
	FieldName     ItemField = "name"
	FieldSize     ItemField = "size"
	FieldCRC      ItemField = "crc"
	FieldMD5      ItemField = "md5"
	FieldSHA1     ItemField = "sha1"
	FieldSHA256   ItemField = "sha256"
	FieldSHA384   ItemField = "sha384"
	FieldSHA512   ItemField = "sha512"
	FieldMerge    ItemField = "merge"
	FieldRegion   ItemField = "region"
	FieldOffset   ItemField = "offset"
	FieldBios     ItemField = "bios"
	FieldDate     ItemField = "date"
	FieldStatus   ItemField = "status"
	FieldInverted ItemField = "inverted"
	FieldIndex    ItemField = "index"
	FieldWritable ItemField = "writable"
	FieldOptional ItemField = "optional"

	FieldDescription ItemField = "description"
	FieldDefault     ItemField = "default"
	FieldLanguage    ItemField = "language"

	FieldSupported     ItemField = "supported"
	FieldPublisher     ItemField = "publisher"
	FieldPartName      ItemField = "partname"
	FieldPartInterface ItemField = "partinterface"
	FieldAreaName      ItemField = "areaname"
	FieldAreaSize      ItemField = "areasize"
)

// MachineField names a projectable field on a machine.
type MachineField string

const (
	MachName         MachineField = "name"
	MachDescription  MachineField = "description"
	MachYear         MachineField = "year"
	MachManufacturer MachineField = "manufacturer"
	MachCategory     MachineField = "category"
	MachComment      MachineField = "comment"
	MachSourceFile   MachineField = "sourcefile"
	MachBoard        MachineField = "board"
	MachRebuildTo    MachineField = "rebuildto"
	MachCloneOf      MachineField = "cloneof"
	MachRomOf        MachineField = "romof"
	MachSampleOf     MachineField = "sampleof"
	MachRunnable     MachineField = "runnable"
)

// itemFields lists every known item field for parsing.
var itemFields = map[string]ItemField{}

// machineFields lists every known machine field for parsing.
var machineFields = map[string]MachineField{}

func init() {
	for _, f := range []ItemField{
		FieldName, FieldSize, FieldCRC, FieldMD5, FieldSHA1, FieldSHA256,
		FieldSHA384, FieldSHA512, FieldMerge, FieldRegion, FieldOffset,
		FieldBios, FieldDate, FieldStatus, FieldInverted, FieldIndex,
		FieldWritable, FieldOptional, FieldDescription, FieldDefault,
		FieldLanguage, FieldSupported, FieldPublisher, FieldPartName,
		FieldPartInterface, FieldAreaName, FieldAreaSize,
	} {
		itemFields[string(f)] = f
	}
	for _, f := range []MachineField{
		MachName, MachDescription, MachYear, MachManufacturer,
		MachCategory, MachComment, MachSourceFile, MachBoard,
		MachRebuildTo, MachCloneOf, MachRomOf, MachSampleOf, MachRunnable,
	} {
		machineFields[string(f)] = f
	}
}

// ParseItemField resolves a field name case-insensitively.
func ParseItemField(s string) (ItemField, bool) {
	f, ok := itemFields[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// ParseMachineField resolves a machine field name case-insensitively.
func ParseMachineField(s string) (MachineField, bool) {
	f, ok := machineFields[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// FieldSet is a set of item fields, typically the writer exclude set.
type FieldSet map[ItemField]struct{}

// NewFieldSet builds a set from field names, ignoring unknown ones.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		if f, ok := ParseItemField(n); ok {
			s[f] = struct{}{}
		}
	}
	return s
}

// Has reports whether the set contains f. A nil set contains nothing.
func (s FieldSet) Has(f ItemField) bool {
	_, ok := s[f]
	return ok
}

// isHashField reports whether f carries hash provenance, which replace
// operations must never overwrite once populated.
func isHashField(f ItemField) bool {
	switch f {
	case FieldCRC, FieldMD5, FieldSHA1, FieldSHA256, FieldSHA384, FieldSHA512:
		return true
	default:
		return false
	}
}
