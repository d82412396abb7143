package fixture

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// Value is the payload stored under a fixture's "value" key.
//
// The set of implementations is closed: [Int], [BigInt], [Float], [String],
// [Binary], [Object] and [Array].
type Value interface {
	encodeTo(enc *jsontext.Encoder) error
}

// Int is a machine-width integer.
type Int int64

func (v Int) encodeTo(enc *jsontext.Encoder) error {
	return enc.WriteToken(jsontext.Int(int64(v)))
}

// BigInt is an integer of arbitrary width, written as a plain JSON number.
type BigInt struct {
	n *big.Int
}

// NewBigInt returns a BigInt holding a copy of n. A nil n is zero.
func NewBigInt(n *big.Int) BigInt {
	if n == nil {
		return BigInt{n: new(big.Int)}
	}

	return BigInt{n: new(big.Int).Set(n)}
}

// Int returns a copy of the held integer.
func (v BigInt) Int() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(v.n)
}

// String returns the decimal form.
func (v BigInt) String() string {
	return v.Int().String()
}

func (v BigInt) encodeTo(enc *jsontext.Encoder) error {
	return enc.WriteValue(jsontext.Value(v.String()))
}

// Float is a double. Negative zero keeps its sign.
type Float float64

// String formats v the way Python's float repr does: the shortest text that
// round-trips, always with a fraction or an exponent ("0.0", "-0.0",
// "100.25", "1e+16"). Non-finite values format as "nan", "inf" and "-inf".
func (v Float) String() string {
	f := float64(v)

	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

func (v Float) encodeTo(enc *jsontext.Encoder) error {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s", ErrUnrepresentable, v)
	}

	return enc.WriteValue(jsontext.Value(v.String()))
}

// String is a text value.
type String string

func (v String) encodeTo(enc *jsontext.Encoder) error {
	return enc.WriteToken(jsontext.String(string(v)))
}

// Binary is a byte sequence, written as standard padded base64.
type Binary []byte

// Base64 returns the encoded payload.
func (v Binary) Base64() string {
	return base64.StdEncoding.EncodeToString(v)
}

func (v Binary) encodeTo(enc *jsontext.Encoder) error {
	return enc.WriteToken(jsontext.String(v.Base64()))
}

// Entry is one member of an [Object].
type Entry struct {
	Key   string
	Value Value
}

// Object is a JSON object whose members are written in slice order.
type Object []Entry

func (v Object) encodeTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	for _, e := range v {
		if e.Value == nil {
			return fmt.Errorf("%w: member %q", ErrNoValue, e.Key)
		}

		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return err
		}

		if err := e.Value.encodeTo(enc); err != nil {
			return err
		}
	}

	return enc.WriteToken(jsontext.EndObject)
}

// Array is a JSON array.
type Array []Value

func (v Array) encodeTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}

	for i, elem := range v {
		if elem == nil {
			return fmt.Errorf("%w: element %d", ErrNoValue, i)
		}

		if err := elem.encodeTo(enc); err != nil {
			return err
		}
	}

	return enc.WriteToken(jsontext.EndArray)
}
