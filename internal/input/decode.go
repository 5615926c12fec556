package input

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode converts raw file content to a UTF-8 string.
//
// Design decision: We only sniff what can be detected without guessing.
// A byte order mark selects UTF-8 or UTF-16 via unicode.BOMOverride. Content
// without a BOM that is valid UTF-8 is returned unchanged. Anything else is
// decoded as Windows-1252, which maps every byte and matches the common
// "platform default" for legacy English text files.
func Decode(raw []byte) (string, error) {
	if hasBOM(raw) {
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode unicode input: %w", err)
		}
		return string(out), nil
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode windows-1252 input: %w", err)
	}
	return string(out), nil
}

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bomUTF8) ||
		bytes.HasPrefix(raw, bomUTF16BE) ||
		bytes.HasPrefix(raw, bomUTF16LE)
}
