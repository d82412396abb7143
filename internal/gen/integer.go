package gen

import (
	"iter"
	"math"
	"math/big"
	"strconv"

	"github.com/calvinalkan/smilegen/internal/fixture"
)

// integerLimit bounds the magnitudes emitted by [Integers].
const integerLimit = 1 << 31

// Integers yields 0, then +v and -v for v = 1, 2, 5, 10, 21, 42, ... while
// v < 2^31. Each step doubles v and adds one when v was even, so the low bit
// alternates and both parities stay covered up to the 32-bit boundary.
func Integers() iter.Seq[fixture.Fixture] {
	return func(yield func(fixture.Fixture) bool) {
		if !yield(intFixture(0)) {
			return
		}

		for v := int64(1); v < integerLimit; {
			if !yield(intFixture(v)) || !yield(intFixture(-v)) {
				return
			}

			even := v%2 == 0
			v *= 2

			if even {
				v++
			}
		}
	}
}

func intFixture(v int64) fixture.Fixture {
	return fixture.Fixture{Name: strconv.FormatInt(v, 10), Value: fixture.Int(v)}
}

// BigIntegers yields 0, ±(2^64 - 1) and ±2^120.
func BigIntegers() iter.Seq[fixture.Fixture] {
	maxUint64 := new(big.Int).SetUint64(math.MaxUint64)
	pow120 := new(big.Int).Lsh(big.NewInt(1), 120)

	values := []*big.Int{
		new(big.Int),
		maxUint64,
		new(big.Int).Neg(maxUint64),
		pow120,
		new(big.Int).Neg(pow120),
	}

	return func(yield func(fixture.Fixture) bool) {
		for _, n := range values {
			v := fixture.NewBigInt(n)
			if !yield(fixture.Fixture{Name: v.String(), Value: v}) {
				return
			}
		}
	}
}

// Floats yields 0.0, -0.0, 100.25 and -100.25. Names use the float text, so
// the signed zeros land in distinct files.
func Floats() iter.Seq[fixture.Fixture] {
	values := []fixture.Float{0, fixture.Float(math.Copysign(0, -1)), 100.25, -100.25}

	return func(yield func(fixture.Fixture) bool) {
		for _, v := range values {
			if !yield(fixture.Fixture{Name: v.String(), Value: v}) {
				return
			}
		}
	}
}
