// Package charsetx resolves character set names and converts text
// stored in those character sets to UTF-8.
//
// Names are the ones browsers understand ("utf-8", "latin1",
// "windows-1252", ...), resolved through the WHATWG encoding index.
// Decoding never fails on malformed input: bytes that have no meaning
// in the source character set decode to U+FFFD so that the result is
// always printable.
package charsetx

import (
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Lookup resolves a character set name to its encoding.
// An empty name resolves to UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	if isUTF8(name) {
		return encoding.Nop, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return enc, nil
}

// Decode converts bs from the named character set to UTF-8.
// It fails only if the name itself is unknown.
func Decode(name string, bs []byte) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == encoding.Nop {
		return bs, nil
	}
	out, err := enc.NewDecoder().Bytes(bs)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return out, nil
}

// DecodeString converts s from the named character set to UTF-8,
// returning s unchanged if the name is unknown.
// Use it on display paths where a bad name must not block rendering.
func DecodeString(name, s string) string {
	enc, err := Lookup(name)
	if err != nil || enc == encoding.Nop {
		return s
	}
	out, err := enc.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

// isUTF8 reports whether name is a spelling of UTF-8,
// which needs no conversion.
func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
