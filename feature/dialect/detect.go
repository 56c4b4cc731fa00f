package dialect

import (
	"bytes"
	"fmt"
)

// Detect sniffs the dialect from the first bytes of an input. XML inputs
// are told apart by their root element, text inputs by their leading
// token. It needs no more than the first kilobyte.
func Detect(sample []byte) (Format, error) {
	s := bytes.TrimLeft(sample, " \t\r\n\xef\xbb\xbf")

	switch {
	case len(s) == 0:
		return "", fmt.Errorf("dialect: empty input")
	case s[0] == '#':
		return AttractMode, nil
	case s[0] == '<':
		for _, probe := range []struct {
			root   string
			format Format
		}{
			{"<datafile", Logiqx},
			{"<mame", ListXML},
			{"<softwarelist", SoftwareList},
		} {
			if bytes.Contains(s, []byte(probe.root)) {
				return probe.format, nil
			}
		}
		return "", fmt.Errorf("dialect: unrecognized XML root")
	case bytes.HasPrefix(s, []byte("clrmamepro")) ||
		bytes.HasPrefix(s, []byte("game")) ||
		bytes.HasPrefix(s, []byte("machine")) ||
		bytes.HasPrefix(s, []byte("set")) ||
		bytes.HasPrefix(s, []byte("resource")):
		return ClrMamePro, nil
	default:
		return "", fmt.Errorf("dialect: unrecognized input")
	}
}
