// Package gen enumerates the fixtures of every category.
//
// Each generator is a pure function returning a lazy sequence. Nothing here
// touches the filesystem; see package emit for rendering and writing.
package gen

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/calvinalkan/smilegen/internal/fixture"
)

// ErrUnknownCategory is returned when a category name is not registered.
var ErrUnknownCategory = errors.New("unknown category")

// emoji is the non-BMP suffix used to push strings and keys across the
// multi-byte and surrogate-pair boundary.
const emoji = "😃"

// Params sizes the shared-dictionary scenarios. The defaults were chosen
// against the reference encoder's dedup tables; confirm them there before
// changing.
type Params struct {
	// ABCount is the number of identical two-member objects in "ab".
	ABCount int
	// LargeDistinct is the number of distinct single-member objects in "large".
	LargeDistinct int
	// LargeCopies is how many times the distinct set repeats in "large".
	LargeCopies int
	// EvictCount is the number of objects in "evict".
	EvictCount int
}

// DefaultParams returns the sizes of the historical fixture set.
func DefaultParams() Params {
	return Params{
		ABCount:       10,
		LargeDistinct: 100,
		LargeCopies:   2,
		EvictCount:    1300,
	}
}

// Category is one fixture directory and the generator that fills it.
type Category struct {
	// Name is the directory name.
	Name string
	// Short describes the category for listings.
	Short string
	// Fixtures returns the category's cases in emission order.
	Fixtures func(p Params) iter.Seq[fixture.Fixture]
}

var categories = []Category{
	{
		Name:     "integer",
		Short:    "zero and ±magnitudes growing toward 2^31",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return Integers() },
	},
	{
		Name:     "big_integer",
		Short:    "integers beyond 64 bits",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return BigIntegers() },
	},
	{
		Name:     "float",
		Short:    "signed zeros and ±100.25",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return Floats() },
	},
	{
		Name:     "string",
		Short:    "runs of 'a' with and without a non-BMP suffix",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return Strings() },
	},
	{
		Name:     "binary",
		Short:    "base64 byte runs, plain and rawBinary",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return Binaries() },
	},
	{
		Name:     "map",
		Short:    "single-member objects with growing keys",
		Fixtures: func(Params) iter.Seq[fixture.Fixture] { return Maps() },
	},
	{
		Name:     "shared_property",
		Short:    "object arrays exercising key dedup",
		Fixtures: SharedProperties,
	},
	{
		Name:     "shared_string",
		Short:    "object arrays exercising string value dedup",
		Fixtures: SharedStrings,
	},
}

// Categories returns every category in registration order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Names returns every category name in registration order.
func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	return names
}

// Lookup returns the category called name.
func Lookup(name string) (Category, error) {
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}

	return Category{}, fmt.Errorf("%w: %s (valid: %s)", ErrUnknownCategory, name, strings.Join(Names(), ", "))
}

// Select resolves names to categories, dropping repeats and keeping the
// order given. No names selects every category.
func Select(names []string) ([]Category, error) {
	if len(names) == 0 {
		return Categories(), nil
	}

	selected := make([]Category, 0, len(names))

	for _, name := range names {
		c, err := Lookup(name)
		if err != nil {
			return nil, err
		}

		if slices.ContainsFunc(selected, func(s Category) bool { return s.Name == c.Name }) {
			continue
		}

		selected = append(selected, c)
	}

	return selected, nil
}
