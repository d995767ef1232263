package lexer

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource reads a source file and decodes it to a UTF-8 string,
// detecting a byte-order mark the way a systems-language compiler's
// file front door typically does: UTF-8 BOM is stripped, UTF-16 BOMs
// are transcoded, and BOM-less input is assumed (and validated) to be
// UTF-8 already.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: source is not valid UTF-8", path)
	}
	return string(data), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 source: %w", err)
	}
	return string(utf8Data), nil
}
