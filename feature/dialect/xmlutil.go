package dialect

import (
	"encoding/xml"
	"strings"
)

// Attr returns the value of the named attribute on a start element,
// matched case-insensitively, or "".
func Attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

// ElementText consumes the element the decoder is positioned inside and
// returns its character data. Decoding failures yield "" and leave the
// caller free to continue with the next sibling.
func ElementText(d *xml.Decoder, se xml.StartElement) string {
	var s string
	if err := d.DecodeElement(&s, &se); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Escape returns s with XML special characters escaped for use in
// attribute values and character data.
func Escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
