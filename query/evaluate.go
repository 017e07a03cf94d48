package query

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/arthur-debert/docbind/types"
)

// Matches reports whether the record satisfies every condition of the
// query (AND semantics).
func (q Query) Matches(rec types.Record) (bool, error) {
	for _, cond := range q.Conditions {
		match, err := q.evaluateCondition(rec, cond)
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

func (q Query) evaluateCondition(rec types.Record, cond BoundCondition) (bool, error) {
	actual := fieldValue(rec, cond.Field)

	switch cond.Op {
	case Eq:
		return valuesEqual(actual, cond.Value), nil
	case Ne:
		return !valuesEqual(actual, cond.Value), nil
	case Gt:
		return ordered(actual, cond.Value, func(c int) bool { return c > 0 })
	case Gte:
		return ordered(actual, cond.Value, func(c int) bool { return c >= 0 })
	case Lt:
		return ordered(actual, cond.Value, func(c int) bool { return c < 0 })
	case Lte:
		return ordered(actual, cond.Value, func(c int) bool { return c <= 0 })
	case In:
		return q.evaluateIn(actual, cond)
	case Near:
		return q.evaluateNear(actual, cond)
	default:
		return false, fmt.Errorf("unsupported operator: %s", cond.Op)
	}
}

// fieldValue extracts a field from a record, with the identity and
// timestamp columns addressable by reserved names. Dotted paths descend
// into nested documents.
func fieldValue(rec types.Record, field string) interface{} {
	switch field {
	case "uuid":
		return rec.UUID
	case "created_at":
		return rec.CreatedAt
	case "updated_at":
		return rec.UpdatedAt
	}

	var current interface{} = rec.Fields
	for field != "" {
		doc, ok := current.(types.Document)
		if !ok {
			return nil
		}
		head := field
		if i := strings.IndexByte(field, '.'); i >= 0 {
			head, field = field[:i], field[i+1:]
		} else {
			field = ""
		}
		value, exists := doc[head]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}

func (q Query) evaluateIn(actual interface{}, cond BoundCondition) (bool, error) {
	list, ok := cond.Value.(types.List)
	if !ok {
		return false, fmt.Errorf("field %s: in operator requires a list value, got %T", cond.Field, cond.Value)
	}
	for _, candidate := range list {
		if valuesEqual(actual, candidate) {
			return true, nil
		}
	}
	return false, nil
}

// evaluateNear treats both sides as planar [x, y] coordinate pairs and
// matches when their euclidean distance is within the query's max
// distance. Without a max distance every point matches.
func (q Query) evaluateNear(actual interface{}, cond BoundCondition) (bool, error) {
	target, err := asPoint(cond.Value)
	if err != nil {
		return false, fmt.Errorf("field %s: %w", cond.Field, err)
	}
	point, err := asPoint(actual)
	if err != nil {
		return false, nil // record has no usable coordinate, no match
	}
	if q.MaxDistance == nil {
		return true, nil
	}

	dx := point[0] - target[0]
	dy := point[1] - target[1]
	return math.Sqrt(dx*dx+dy*dy) <= q.MaxDistance.Normalized(), nil
}

func asPoint(value interface{}) ([2]float64, error) {
	list, ok := value.(types.List)
	if !ok || len(list) != 2 {
		return [2]float64{}, fmt.Errorf("expected a two-element coordinate list, got %T", value)
	}
	var point [2]float64
	for i, element := range list {
		f, ok := asFloat(element)
		if !ok {
			return [2]float64{}, fmt.Errorf("coordinate %d is not numeric: %T", i, element)
		}
		point[i] = f
	}
	return point, nil
}

// valuesEqual compares two values for equality. Numbers compare by value
// regardless of width, times by instant, documents and lists structurally.
func valuesEqual(a, b interface{}) bool {
	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		return ok && af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func ordered(a, b interface{}, accept func(int) bool) (bool, error) {
	cmp, err := Compare(a, b)
	if err != nil {
		return false, nil // incomparable values never satisfy an ordering
	}
	return accept(cmp), nil
}

// Compare orders two field values: -1, 0 or 1. Numbers order numerically,
// times chronologically, strings and bools by their natural order. Mixed
// or non-scalar values are an error.
func Compare(a, b interface{}) (int, error) {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt), nil
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			switch {
			case as < bs:
				return -1, nil
			case as > bs:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0, nil
			case bb:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func asFloat(value interface{}) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}
