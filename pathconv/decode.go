package pathconv

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// wsl.exe prints its own messages (unknown distro, service errors) as UTF-16LE.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// decodeOutput validates wslpath's stdout as UTF-8.
func decodeOutput(b []byte) (string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return "", &DecodeError{Cause: err}
	}
	return string(bytes.TrimPrefix(b, utf8BOM)), nil
}

// diagnostic returns the first non-empty message found in streams.
func diagnostic(streams ...[]byte) string {
	for _, b := range streams {
		if msg := decodeDiagnostic(b); msg != "" {
			return msg
		}
	}
	return ""
}

func decodeDiagnostic(b []byte) string {
	var s string
	if looksUTF16LE(b) {
		if decoded, err := utf16LE.NewDecoder().Bytes(b); err == nil {
			s = string(decoded)
		}
	}
	if s == "" {
		s = strings.ToValidUTF8(string(b), "\uFFFD")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

// looksUTF16LE reports whether b is plausibly UTF-16: even length with NUL
// bytes, which never appear in wslpath's own UTF-8 output.
func looksUTF16LE(b []byte) bool {
	return len(b) >= 2 && len(b)%2 == 0 && bytes.IndexByte(b, 0) >= 0
}
