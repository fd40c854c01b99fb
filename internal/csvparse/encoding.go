package csvparse

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// repairText returns s as valid UTF-8. Invalid byte sequences are read as
// Windows-1252. Valid text that looks like UTF-8 decoded as Latin-1 ("Â£")
// is re-encoded and decoded again. The bool reports whether s changed.
func repairText(s string) (string, bool) {
	if !utf8.ValidString(s) {
		decoded, err := charmap.Windows1252.NewDecoder().String(s)
		if err != nil {
			return strings.ToValidUTF8(s, "�"), true
		}
		return decoded, true
	}
	if !looksDoubleEncoded(s) {
		return s, false
	}
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) {
		return s, false
	}
	return raw, true
}

// looksDoubleEncoded reports whether s holds a UTF-8 lead byte rendered as
// 'Â' or 'Ã' followed by a continuation byte rendered in U+0080..U+00BF.
func looksDoubleEncoded(s string) bool {
	prevLead := false
	for _, r := range s {
		if prevLead && r >= 0x80 && r <= 0xBF {
			return true
		}
		prevLead = r == 'Â' || r == 'Ã'
	}
	return false
}
