package projection

import (
	"strconv"

	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/utils"
)

// Get returns the textual form of a field on an item, or ok=false when
// the field is excluded, absent on this variant, or unset. Writers call
// this for every optional attribute they emit.
func Get(it item.Item, f ItemField, exclude FieldSet) (string, bool) {
	if exclude.Has(f) {
		return "", false
	}
	v := getField(it, f)
	return v, v != ""
}

// GetMachine returns the textual form of a machine field.
func GetMachine(m *item.Machine, f MachineField) string {
	if m == nil {
		return ""
	}
	switch f {
	case MachName:
		return m.Name
	case MachDescription:
		return m.Description
	case MachYear:
		return m.Year
	case MachManufacturer:
		return m.Manufacturer
	case MachCategory:
		return m.Category
	case MachComment:
		return m.Comment
	case MachSourceFile:
		return m.SourceFile
	case MachBoard:
		return m.Board
	case MachRebuildTo:
		return m.RebuildTo
	case MachCloneOf:
		return m.CloneOf
	case MachRomOf:
		return m.RomOf
	case MachSampleOf:
		return m.SampleOf
	case MachRunnable:
		return m.Runnable.String()
	default:
		return ""
	}
}

// SetFields applies field→value mappings to the item and its machine.
// Values pass through the same normalization the dialect readers use, so
// a malformed hash value clears the field instead of storing garbage.
func SetFields(it item.Item, fields map[ItemField]string, machFields map[MachineField]string) {
	for f, v := range fields {
		setField(it, f, v)
	}
	if len(machFields) > 0 && it.Machine() != nil {
		for f, v := range machFields {
			setMachineField(it.Machine(), f, v)
		}
	}
}

// RemoveFields nulls out the listed fields, including any matching
// fields on nested Part, DiskArea and PartFeature sub-objects.
func RemoveFields(it item.Item, fields []ItemField, machFields []MachineField) {
	for _, f := range fields {
		setField(it, f, "")
	}
	if len(machFields) > 0 && it.Machine() != nil {
		for _, f := range machFields {
			setMachineField(it.Machine(), f, "")
		}
	}
}

// ReplaceFrom copies the listed fields from src into dst. Hash fields
// transfer only when dst's value is empty, so the first source to state
// a hash keeps provenance. When the items are of different variants the
// whole call is a no-op.
func ReplaceFrom(dst, src item.Item, fields []ItemField, machFields []MachineField) {
	if dst.Kind() != src.Kind() {
		return
	}
	for _, f := range fields {
		if isHashField(f) && getField(dst, f) != "" {
			continue
		}
		setField(dst, f, getField(src, f))
	}
	if len(machFields) > 0 && dst.Machine() != nil && src.Machine() != nil {
		for _, f := range machFields {
			setMachineField(dst.Machine(), f, GetMachine(src.Machine(), f))
		}
	}
}

func getField(it item.Item, f ItemField) string {
	// Fields shared by every variant.
	switch f {
	case FieldName:
		return it.Name()
	case FieldSupported, FieldPublisher, FieldPartName, FieldPartInterface,
		FieldAreaName, FieldAreaSize:
		if v, ok := getSoftwareField(it, f); ok {
			return v
		}
	}

	switch v := it.(type) {
	case *item.Rom:
		switch f {
		case FieldSize:
			if v.Size == utils.SizeUnknown {
				return ""
			}
			return strconv.FormatInt(v.Size, 10)
		case FieldCRC:
			return v.CRC
		case FieldMD5:
			return v.MD5
		case FieldSHA1:
			return v.SHA1
		case FieldSHA256:
			return v.SHA256
		case FieldSHA384:
			return v.SHA384
		case FieldSHA512:
			return v.SHA512
		case FieldMerge:
			return v.Merge
		case FieldRegion:
			return v.Region
		case FieldOffset:
			return v.Offset
		case FieldBios:
			return v.Bios
		case FieldDate:
			return v.Date
		case FieldStatus:
			return v.Status.String()
		case FieldInverted:
			return v.Inverted.String()
		}
	case *item.Disk:
		switch f {
		case FieldMD5:
			return v.MD5
		case FieldSHA1:
			return v.SHA1
		case FieldSHA256:
			return v.SHA256
		case FieldSHA384:
			return v.SHA384
		case FieldSHA512:
			return v.SHA512
		case FieldMerge:
			return v.Merge
		case FieldRegion:
			return v.Region
		case FieldIndex:
			return v.Index
		case FieldWritable:
			return v.Writable.String()
		case FieldStatus:
			return v.Status.String()
		case FieldOptional:
			return v.Optional.String()
		case FieldPartName:
			if v.DiskPart != nil {
				return v.DiskPart.Name
			}
		case FieldPartInterface:
			if v.DiskPart != nil {
				return v.DiskPart.Interface
			}
		case FieldAreaName:
			if v.Area != nil {
				return v.Area.Name
			}
		}
	case *item.BiosSet:
		switch f {
		case FieldDescription:
			return v.Description
		case FieldDefault:
			return v.Default.String()
		}
	case *item.Release:
		switch f {
		case FieldRegion:
			return v.Region
		case FieldLanguage:
			return v.Language
		case FieldDate:
			return v.Date
		case FieldDefault:
			return v.Default.String()
		}
	}
	return ""
}

func getSoftwareField(it item.Item, f ItemField) (string, bool) {
	sw := it.Software()
	if sw == nil {
		return "", false
	}
	switch f {
	case FieldSupported:
		return sw.Supported.String(), true
	case FieldPublisher:
		return sw.Publisher, true
	case FieldPartName:
		if sw.PartName != "" {
			return sw.PartName, true
		}
	case FieldPartInterface:
		if sw.PartInterface != "" {
			return sw.PartInterface, true
		}
	case FieldAreaName:
		if sw.AreaName != "" {
			return sw.AreaName, true
		}
	case FieldAreaSize:
		if sw.AreaSize != utils.SizeUnknown {
			return strconv.FormatInt(sw.AreaSize, 10), true
		}
	}
	return "", false
}

func setField(it item.Item, f ItemField, val string) {
	if f == FieldName {
		it.SetName(val)
		return
	}
	if setSoftwareField(it, f, val) {
		return
	}

	switch v := it.(type) {
	case *item.Rom:
		switch f {
		case FieldSize:
			v.Size = utils.ToSize(val)
		case FieldCRC:
			v.SetHash(hashes.CRC32, val)
		case FieldMD5:
			v.SetHash(hashes.MD5, val)
		case FieldSHA1:
			v.SetHash(hashes.SHA1, val)
		case FieldSHA256:
			v.SetHash(hashes.SHA256, val)
		case FieldSHA384:
			v.SetHash(hashes.SHA384, val)
		case FieldSHA512:
			v.SetHash(hashes.SHA512, val)
		case FieldMerge:
			v.Merge = val
		case FieldRegion:
			v.Region = val
		case FieldOffset:
			v.Offset = val
		case FieldBios:
			v.Bios = val
		case FieldDate:
			v.Date = val
		case FieldStatus:
			v.Status = item.ParseDumpStatus(val)
		case FieldInverted:
			v.Inverted = item.ParseTriState(val)
		}
	case *item.Disk:
		switch f {
		case FieldMD5:
			v.SetHash(hashes.MD5, val)
		case FieldSHA1:
			v.SetHash(hashes.SHA1, val)
		case FieldSHA256:
			v.SetHash(hashes.SHA256, val)
		case FieldSHA384:
			v.SetHash(hashes.SHA384, val)
		case FieldSHA512:
			v.SetHash(hashes.SHA512, val)
		case FieldMerge:
			v.Merge = val
		case FieldRegion:
			v.Region = val
		case FieldIndex:
			v.Index = val
		case FieldWritable:
			v.Writable = item.ParseTriState(val)
		case FieldStatus:
			v.Status = item.ParseDumpStatus(val)
		case FieldOptional:
			v.Optional = item.ParseTriState(val)
		case FieldPartName:
			if v.DiskPart != nil {
				v.DiskPart.Name = val
			}
		case FieldPartInterface:
			if v.DiskPart != nil {
				v.DiskPart.Interface = val
			}
		case FieldAreaName:
			if v.Area != nil {
				v.Area.Name = val
			}
		}
	case *item.BiosSet:
		switch f {
		case FieldDescription:
			v.Description = val
		case FieldDefault:
			v.Default = item.ParseTriState(val)
		}
	case *item.Release:
		switch f {
		case FieldRegion:
			v.Region = val
		case FieldLanguage:
			v.Language = val
		case FieldDate:
			v.Date = val
		case FieldDefault:
			v.Default = item.ParseTriState(val)
		}
	}
}

// setSoftwareField applies f to the SoftwareList envelope when present.
// It reports true when the field was consumed there; disks additionally
// mirror part fields onto their own sub-objects via setField.
func setSoftwareField(it item.Item, f ItemField, val string) bool {
	sw := it.Software()
	if sw == nil {
		return false
	}
	switch f {
	case FieldSupported:
		sw.Supported = item.ParseTriState(val)
	case FieldPublisher:
		sw.Publisher = val
	case FieldPartName:
		sw.PartName = val
		if d, ok := it.(*item.Disk); ok && d.DiskPart != nil {
			d.DiskPart.Name = val
		}
	case FieldPartInterface:
		sw.PartInterface = val
		if d, ok := it.(*item.Disk); ok && d.DiskPart != nil {
			d.DiskPart.Interface = val
		}
	case FieldAreaName:
		sw.AreaName = val
		if d, ok := it.(*item.Disk); ok && d.Area != nil {
			d.Area.Name = val
		}
	case FieldAreaSize:
		sw.AreaSize = utils.ToSize(val)
	default:
		return false
	}
	return true
}

func setMachineField(m *item.Machine, f MachineField, val string) {
	switch f {
	case MachName:
		m.Name = val
	case MachDescription:
		m.Description = val
	case MachYear:
		m.Year = val
	case MachManufacturer:
		m.Manufacturer = val
	case MachCategory:
		m.Category = val
	case MachComment:
		m.Comment = val
	case MachSourceFile:
		m.SourceFile = val
	case MachBoard:
		m.Board = val
	case MachRebuildTo:
		m.RebuildTo = val
	case MachCloneOf:
		m.CloneOf = val
	case MachRomOf:
		m.RomOf = val
	case MachSampleOf:
		m.SampleOf = val
	case MachRunnable:
		m.Runnable = item.ParseTriState(val)
	}
}
