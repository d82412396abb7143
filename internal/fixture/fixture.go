// Package fixture models a single golden-input file for the Smile codec
// suite and renders it as JSON.
//
// Rendering follows the byte layout of Python's json.dump defaults (", " and
// ": " separators, no trailing newline, optional \uXXXX escaping of all
// non-ASCII text) so regenerated files match the historical fixture set.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Ext is the extension of every fixture file.
const Ext = ".json"

// RawSuffix is appended to the name of a binary case flagged rawBinary.
const RawSuffix = "-raw"

var (
	// ErrUnrepresentable is returned for values JSON cannot hold (NaN, ±Inf).
	ErrUnrepresentable = errors.New("value not representable in JSON")

	// ErrNoValue is returned when a fixture or a nested member has no value.
	ErrNoValue = errors.New("missing value")
)

// Fixture is one named test case. The boolean markers tell the consumer which
// encoder mode to exercise; they are written only when set.
type Fixture struct {
	// Name is the file name stem. It is not part of the encoded document.
	Name string

	RawBinary        bool
	SharedProperties bool
	SharedStrings    bool

	Value Value
}

// FileName returns Name with the fixture extension.
func (f Fixture) FileName() string {
	return f.Name + Ext
}

// EncodeOptions controls the byte layout of [Fixture.Encode].
type EncodeOptions struct {
	// EnsureASCII escapes every non-ASCII rune as \uXXXX, using surrogate
	// pairs outside the BMP.
	EnsureASCII bool
}

// MarshalJSONTo writes the fixture document: set flags first, "value" last.
func (f Fixture) MarshalJSONTo(enc *jsontext.Encoder) error {
	if f.Value == nil {
		return fmt.Errorf("%w: fixture %q", ErrNoValue, f.Name)
	}

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	flags := []struct {
		key string
		set bool
	}{
		{"rawBinary", f.RawBinary},
		{"sharedProperties", f.SharedProperties},
		{"sharedStrings", f.SharedStrings},
	}

	for _, flag := range flags {
		if !flag.set {
			continue
		}

		if err := enc.WriteToken(jsontext.String(flag.key)); err != nil {
			return err
		}

		if err := enc.WriteToken(jsontext.True); err != nil {
			return err
		}
	}

	if err := enc.WriteToken(jsontext.String("value")); err != nil {
		return err
	}

	if err := f.Value.encodeTo(enc); err != nil {
		return err
	}

	return enc.WriteToken(jsontext.EndObject)
}

// Encode renders the fixture file content.
func (f Fixture) Encode(opts EncodeOptions) ([]byte, error) {
	data, err := json.Marshal(f,
		jsontext.SpaceAfterColon(true),
		jsontext.SpaceAfterComma(true),
	)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", f.Name, err)
	}

	data = bytes.TrimSuffix(data, []byte("\n"))

	if opts.EnsureASCII {
		data = escapeNonASCII(data)
	}

	return data, nil
}

// escapeNonASCII rewrites every multi-byte rune as a JSON \u escape. Non-ASCII
// bytes only occur inside strings in valid JSON, so the whole document can be
// rewritten without tracking string boundaries.
func escapeNonASCII(src []byte) []byte {
	out := make([]byte, 0, len(src))

	for len(src) > 0 {
		if src[0] < utf8.RuneSelf {
			out = append(out, src[0])
			src = src[1:]

			continue
		}

		r, size := utf8.DecodeRune(src)
		src = src[size:]

		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)

			continue
		}

		out = fmt.Appendf(out, `\u%04x`, r)
	}

	return out
}
