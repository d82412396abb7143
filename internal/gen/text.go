package gen

import (
	"bytes"
	"iter"
	"strconv"
	"strings"

	"github.com/calvinalkan/smilegen/internal/fixture"
)

// maxRun is the longest run of 'a' in string values and map keys.
const maxRun = 69

// maxBinaryRun is the longest byte run in binary values.
const maxBinaryRun = 8

// patternByte is a repeating non-ASCII byte with the high bit set.
const patternByte = 0xAA

// Strings yields "" (named "empty"), then for lengths 1..69 a run of 'a'
// alone and followed by one non-BMP rune. Each fixture is named after its
// value.
func Strings() iter.Seq[fixture.Fixture] {
	return func(yield func(fixture.Fixture) bool) {
		if !yield(fixture.Fixture{Name: "empty", Value: fixture.String("")}) {
			return
		}

		for i := 1; i <= maxRun; i++ {
			run := strings.Repeat("a", i)

			for _, s := range []string{run, run + emoji} {
				if !yield(fixture.Fixture{Name: s, Value: fixture.String(s)}) {
					return
				}
			}
		}
	}
}

// Maps yields, for lengths 0..69, a single-member object keyed by a run of
// 'a' (alone and with a non-BMP suffix) mapping to the length. Fixtures are
// named after the key, so the zero-length plain key writes ".json".
func Maps() iter.Seq[fixture.Fixture] {
	return func(yield func(fixture.Fixture) bool) {
		for i := 0; i <= maxRun; i++ {
			run := strings.Repeat("a", i)

			for _, key := range []string{run, run + emoji} {
				value := fixture.Object{{Key: key, Value: fixture.Int(i)}}
				if !yield(fixture.Fixture{Name: key, Value: value}) {
					return
				}
			}
		}
	}
}

// Binaries yields empty bytes ("empty") and, for lengths 1..8, runs of 'a'
// (named "a", "aa", ...) and of 0xAA (named "1pattern", "2pattern", ...).
// Each case is followed by a "-raw" twin flagged rawBinary with the same
// payload.
func Binaries() iter.Seq[fixture.Fixture] {
	return func(yield func(fixture.Fixture) bool) {
		emit := func(name string, data []byte) bool {
			plain := fixture.Fixture{Name: name, Value: fixture.Binary(data)}
			raw := fixture.Fixture{Name: name + fixture.RawSuffix, RawBinary: true, Value: fixture.Binary(data)}

			return yield(plain) && yield(raw)
		}

		if !emit("empty", []byte{}) {
			return
		}

		for i := 1; i <= maxBinaryRun; i++ {
			if !emit(strings.Repeat("a", i), bytes.Repeat([]byte{'a'}, i)) {
				return
			}

			if !emit(strconv.Itoa(i)+"pattern", bytes.Repeat([]byte{patternByte}, i)) {
				return
			}
		}
	}
}
