package gen

import (
	"iter"
	"strconv"

	"github.com/calvinalkan/smilegen/internal/fixture"
)

// sharedCase builds the array for one shared-dictionary scenario.
type sharedCase struct {
	name  string
	build func(p Params) fixture.Array
}

// SharedProperties yields "ab", "large" and "evict", flagged
// sharedProperties, to exercise dedup of repeated object keys:
//
//   - ab: ABCount copies of {"a": 0, "b": 1}
//   - large: [{"<i>": 0} for i < LargeDistinct], repeated LargeCopies times
//   - evict: EvictCount objects {"repeated": 0, "<i>": 1}
func SharedProperties(p Params) iter.Seq[fixture.Fixture] {
	cases := []sharedCase{
		{"ab", func(p Params) fixture.Array {
			return repeatObject(p.ABCount, fixture.Object{
				{Key: "a", Value: fixture.Int(0)},
				{Key: "b", Value: fixture.Int(1)},
			})
		}},
		{"large", func(p Params) fixture.Array {
			return repeatDistinct(p.LargeDistinct, p.LargeCopies, func(i int) fixture.Object {
				return fixture.Object{{Key: strconv.Itoa(i), Value: fixture.Int(0)}}
			})
		}},
		{"evict", func(p Params) fixture.Array {
			return repeatDistinct(p.EvictCount, 1, func(i int) fixture.Object {
				return fixture.Object{
					{Key: "repeated", Value: fixture.Int(0)},
					{Key: strconv.Itoa(i), Value: fixture.Int(1)},
				}
			})
		}},
	}

	return sharedFixtures(p, cases, func(f *fixture.Fixture) { f.SharedProperties = true })
}

// SharedStrings yields "ab", "large" and "evict", flagged sharedStrings, to
// exercise dedup of repeated string values:
//
//   - ab: ABCount copies of {"1": "a", "2": "b"}
//   - large: [{"1": "<i>"} for i < LargeDistinct], repeated LargeCopies times
//   - evict: EvictCount objects {"1": "repeated", "2": "<i>"}
func SharedStrings(p Params) iter.Seq[fixture.Fixture] {
	cases := []sharedCase{
		{"ab", func(p Params) fixture.Array {
			return repeatObject(p.ABCount, fixture.Object{
				{Key: "1", Value: fixture.String("a")},
				{Key: "2", Value: fixture.String("b")},
			})
		}},
		{"large", func(p Params) fixture.Array {
			return repeatDistinct(p.LargeDistinct, p.LargeCopies, func(i int) fixture.Object {
				return fixture.Object{{Key: "1", Value: fixture.String(strconv.Itoa(i))}}
			})
		}},
		{"evict", func(p Params) fixture.Array {
			return repeatDistinct(p.EvictCount, 1, func(i int) fixture.Object {
				return fixture.Object{
					{Key: "1", Value: fixture.String("repeated")},
					{Key: "2", Value: fixture.String(strconv.Itoa(i))},
				}
			})
		}},
	}

	return sharedFixtures(p, cases, func(f *fixture.Fixture) { f.SharedStrings = true })
}

func sharedFixtures(p Params, cases []sharedCase, flag func(*fixture.Fixture)) iter.Seq[fixture.Fixture] {
	return func(yield func(fixture.Fixture) bool) {
		for _, c := range cases {
			f := fixture.Fixture{Name: c.name, Value: c.build(p)}
			flag(&f)

			if !yield(f) {
				return
			}
		}
	}
}

func repeatObject(n int, obj fixture.Object) fixture.Array {
	arr := make(fixture.Array, 0, max(n, 0))
	for range n {
		arr = append(arr, obj)
	}

	return arr
}

// repeatDistinct builds the distinct objects object(0..n-1) and repeats the
// whole run copies times.
func repeatDistinct(n, copies int, object func(i int) fixture.Object) fixture.Array {
	run := make(fixture.Array, 0, max(n, 0))
	for i := range n {
		run = append(run, object(i))
	}

	arr := make(fixture.Array, 0, len(run)*max(copies, 0))
	for range copies {
		arr = append(arr, run...)
	}

	return arr
}
