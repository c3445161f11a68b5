// Package encoding provides text decoding utilities for mesh and settings files.
package encoding

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps r so it yields UTF-8 text.
// A UTF-8 byte order mark is dropped and UTF-16 input with a BOM is
// transcoded. Anything else passes through, with invalid bytes replaced
// by U+FFFD.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// DecodeBytes converts data to a UTF-8 string the same way NewUTF8Reader does.
// Returns the original bytes as a string if decoding fails.
func DecodeBytes(data []byte) string {
	result, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// NormalizeDecimal replaces every ',' with '.', so numbers written with a
// comma decimal separator parse as floats.
func NormalizeDecimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}
