package query

import (
	"testing"
	"time"

	"github.com/arthur-debert/docbind/types"
)

func record(fields types.Document) types.Record {
	return types.Record{UUID: "rec-1", Fields: fields}
}

func mustMatch(t *testing.T, q Query, rec types.Record, want bool) {
	t.Helper()
	got, err := q.Matches(rec)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if got != want {
		t.Errorf("match = %v, want %v (query %#v)", got, want, q.Conditions)
	}
}

func TestQueryMatches(t *testing.T) {
	rec := record(types.Document{
		"name":   "Alice",
		"age":    int64(30),
		"active": true,
		"address": types.Document{
			"city": "NY",
		},
	})

	t.Run("Eq", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "name", Op: Eq, Value: "Alice"}}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "name", Op: Eq, Value: "Bob"}}}, rec, false)
	})

	t.Run("EqComparesNumbersAcrossWidths", func(t *testing.T) {
		// Stored fields carry int64 from conversion, float64 after a JSON
		// reload; both must compare equal.
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Eq, Value: float64(30)}}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Eq, Value: 30}}}, rec, true)
	})

	t.Run("EqComparesDocumentsStructurally", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "address", Op: Eq, Value: types.Document{"city": "NY"}},
		}}, rec, true)
		// A stray type key prevents the match; this is exactly why
		// stripping happens before binding.
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "address", Op: Eq, Value: types.Document{"city": "NY", "_type": "pkg.Address"}},
		}}, rec, false)
	})

	t.Run("DottedPathsReachNestedFields", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "address.city", Op: Eq, Value: "NY"}}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "address.missing", Op: Eq, Value: "NY"}}}, rec, false)
	})

	t.Run("Ordering", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Gt, Value: int64(20)}}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Gte, Value: int64(30)}}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Lt, Value: int64(30)}}}, rec, false)
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "age", Op: Lte, Value: int64(30)}}}, rec, true)
	})

	t.Run("IncomparableOrderingNeverMatches", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{{Field: "name", Op: Gt, Value: int64(5)}}}, rec, false)
	})

	t.Run("In", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "name", Op: In, Value: types.List{"Bob", "Alice"}},
		}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "name", Op: In, Value: types.List{"Bob", "Carol"}},
		}}, rec, false)
	})

	t.Run("InRequiresList", func(t *testing.T) {
		q := Query{Conditions: []BoundCondition{{Field: "name", Op: In, Value: "Alice"}}}
		if _, err := q.Matches(rec); err == nil {
			t.Fatal("expected error for non-list in value")
		}
	})

	t.Run("AndSemantics", func(t *testing.T) {
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "name", Op: Eq, Value: "Alice"},
			{Field: "active", Op: Eq, Value: true},
		}}, rec, true)
		mustMatch(t, Query{Conditions: []BoundCondition{
			{Field: "name", Op: Eq, Value: "Alice"},
			{Field: "active", Op: Eq, Value: false},
		}}, rec, false)
	})

	t.Run("EmptyQueryMatchesEverything", func(t *testing.T) {
		mustMatch(t, Query{}, rec, true)
	})
}

func TestQueryMatchesNear(t *testing.T) {
	rec := record(types.Document{
		"location": types.List{float64(3), float64(4)},
	})
	target := types.List{float64(0), float64(0)}

	t.Run("WithinDistance", func(t *testing.T) {
		q := Query{
			Conditions:  []BoundCondition{{Field: "location", Op: Near, Value: target}},
			MaxDistance: &types.Distance{Value: 5, Unit: types.Kilometers},
		}
		mustMatch(t, q, rec, true)
	})

	t.Run("BeyondDistance", func(t *testing.T) {
		q := Query{
			Conditions:  []BoundCondition{{Field: "location", Op: Near, Value: target}},
			MaxDistance: &types.Distance{Value: 4.9, Unit: types.Kilometers},
		}
		mustMatch(t, q, rec, false)
	})

	t.Run("UnitConversionApplies", func(t *testing.T) {
		// 3.2 miles is above 5 km.
		q := Query{
			Conditions:  []BoundCondition{{Field: "location", Op: Near, Value: target}},
			MaxDistance: &types.Distance{Value: 3.2, Unit: types.Miles},
		}
		mustMatch(t, q, rec, true)
	})

	t.Run("NoMaxDistanceMatchesAll", func(t *testing.T) {
		q := Query{Conditions: []BoundCondition{{Field: "location", Op: Near, Value: target}}}
		mustMatch(t, q, rec, true)
	})

	t.Run("RecordWithoutCoordinateNeverMatches", func(t *testing.T) {
		q := Query{
			Conditions:  []BoundCondition{{Field: "location", Op: Near, Value: target}},
			MaxDistance: &types.Distance{Value: 100},
		}
		mustMatch(t, q, record(types.Document{"location": "nowhere"}), false)
	})

	t.Run("BadTargetIsAnError", func(t *testing.T) {
		q := Query{Conditions: []BoundCondition{{Field: "location", Op: Near, Value: "not-a-point"}}}
		if _, err := q.Matches(rec); err == nil {
			t.Fatal("expected error for malformed target point")
		}
	})
}

func TestCompare(t *testing.T) {
	earlier := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	cases := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"IntLess", int64(1), int64(2), -1},
		{"FloatVsInt", float64(2), int64(2), 0},
		{"UintGreater", uint64(3), int64(2), 1},
		{"Strings", "a", "b", -1},
		{"Times", earlier, later, -1},
		{"Bools", false, true, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compare(tc.a, tc.b)
			if err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Compare(%#v, %#v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}

	t.Run("MixedTypesFail", func(t *testing.T) {
		if _, err := Compare("a", int64(1)); err == nil {
			t.Fatal("expected error comparing string with number")
		}
	})
}
