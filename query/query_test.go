package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/arthur-debert/docbind/docbind"
	"github.com/arthur-debert/docbind/types"
)

func TestParseCondition(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cases := []struct {
			input string
			want  Condition
		}{
			{"status=eq:0", Condition{Field: "status", Op: Eq, Position: 0}},
			{"age=gte:2", Condition{Field: "age", Op: Gte, Position: 2}},
			{"location=near:1", Condition{Field: "location", Op: Near, Position: 1}},
			{"address.city=eq:0", Condition{Field: "address.city", Op: Eq, Position: 0}},
		}
		for _, tc := range cases {
			got, err := ParseCondition(tc.input)
			if err != nil {
				t.Errorf("%q: unexpected error: %v", tc.input, err)
				continue
			}
			if got != tc.want {
				t.Errorf("%q: got %#v, want %#v", tc.input, got, tc.want)
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{
			"",
			"status",
			"status=eq",
			"status=bogus:0",
			"status=eq:x",
			"=eq:0",
		} {
			if _, err := ParseCondition(input); err == nil {
				t.Errorf("%q: expected error", input)
			}
		}
	})
}

func TestBind(t *testing.T) {
	type Address struct {
		City string
	}

	t.Run("BindsConvertedValues", func(t *testing.T) {
		accessor := docbind.NewConvertingParameterAccessor(
			docbind.NewStructWriter(),
			docbind.NewParameterList([]interface{}{Address{City: "NY"}, "active"}),
		)

		q, err := Bind(accessor, []Condition{
			{Field: "address", Op: Eq, Position: 0},
			{Field: "status", Op: Eq, Position: 1},
		})
		if err != nil {
			t.Fatalf("bind failed: %v", err)
		}

		if len(q.Conditions) != 2 {
			t.Fatalf("expected 2 bound conditions, got %d", len(q.Conditions))
		}

		// The struct parameter arrives as a document with its type key
		// already stripped.
		want := types.Document{"city": "NY"}
		if !reflect.DeepEqual(q.Conditions[0].Value, want) {
			t.Errorf("bound value: got %#v, want %#v", q.Conditions[0].Value, want)
		}
		if q.Conditions[1].Value != "active" {
			t.Errorf("bound value: got %#v, want active", q.Conditions[1].Value)
		}
	})

	t.Run("CapturesAccessorSettings", func(t *testing.T) {
		pageable := types.Pageable{Offset: 1, Limit: 5}
		sort := types.Sort{{Field: "name", Descending: true}}
		distance := types.Distance{Value: 10, Unit: types.Kilometers}

		accessor := docbind.NewConvertingParameterAccessor(
			docbind.NewStructWriter(),
			docbind.NewParameterList(nil,
				docbind.WithPageable(pageable),
				docbind.WithSort(sort),
				docbind.WithMaxDistance(distance),
			),
		)

		q, err := Bind(accessor, nil)
		if err != nil {
			t.Fatalf("bind failed: %v", err)
		}
		if *q.Pageable != pageable {
			t.Errorf("pageable: got %#v", q.Pageable)
		}
		if !reflect.DeepEqual(q.Sort, sort) {
			t.Errorf("sort: got %#v", q.Sort)
		}
		if *q.MaxDistance != distance {
			t.Errorf("max distance: got %#v", q.MaxDistance)
		}
	})

	t.Run("PropagatesAccessorErrors", func(t *testing.T) {
		accessor := docbind.NewConvertingParameterAccessor(
			docbind.NewStructWriter(),
			docbind.NewParameterList([]interface{}{"only"}),
		)

		_, err := Bind(accessor, []Condition{{Field: "x", Op: Eq, Position: 9}})
		if !errors.Is(err, docbind.ErrPositionOutOfRange) {
			t.Fatalf("expected position error, got %v", err)
		}
	})
}
