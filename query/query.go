// Package query binds call-site parameters into executable document
// queries. Values are always pulled through a ParameterAccessor, so when
// the accessor is a converting decorator every bound value arrives in the
// store's native representation with type metadata already stripped.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/docbind/docbind"
	"github.com/arthur-debert/docbind/types"
)

// Operator names a comparison applied between a record field and a bound
// parameter value.
type Operator string

const (
	Eq   Operator = "eq"
	Ne   Operator = "ne"
	Gt   Operator = "gt"
	Gte  Operator = "gte"
	Lt   Operator = "lt"
	Lte  Operator = "lte"
	In   Operator = "in"
	Near Operator = "near"
)

var validOperators = map[Operator]bool{
	Eq: true, Ne: true, Gt: true, Gte: true,
	Lt: true, Lte: true, In: true, Near: true,
}

// Condition is an unbound query term: a record field, an operator, and
// the parameter position the comparison value will be pulled from.
type Condition struct {
	Field    string
	Op       Operator
	Position int
}

// ParseCondition parses the "field=op:position" form used on the command
// line, e.g. "status=eq:0" or "location=near:2".
func ParseCondition(s string) (Condition, error) {
	eq := strings.Index(s, "=")
	if eq <= 0 {
		return Condition{}, fmt.Errorf("invalid condition %q: expected field=op:position", s)
	}
	field := s[:eq]

	rest := s[eq+1:]
	colon := strings.Index(rest, ":")
	if colon <= 0 {
		return Condition{}, fmt.Errorf("invalid condition %q: expected field=op:position", s)
	}

	op := Operator(rest[:colon])
	if !validOperators[op] {
		return Condition{}, fmt.Errorf("invalid condition %q: unknown operator %q", s, op)
	}

	position, err := strconv.Atoi(rest[colon+1:])
	if err != nil {
		return Condition{}, fmt.Errorf("invalid condition %q: bad position: %w", s, err)
	}

	return Condition{Field: field, Op: op, Position: position}, nil
}

// BoundCondition is a condition whose comparison value has been pulled
// from the accessor.
type BoundCondition struct {
	Field string
	Op    Operator
	Value interface{}
}

// Query is a fully bound query: conditions plus the paging, ordering and
// proximity settings captured from the accessor.
type Query struct {
	Conditions  []BoundCondition
	Sort        types.Sort
	Pageable    *types.Pageable
	MaxDistance *types.Distance
}

// Bind resolves each condition's value through the accessor and captures
// the accessor's sort, pageable and max-distance settings. Errors from the
// accessor (out-of-range positions, conversion failures) are propagated.
func Bind(accessor docbind.ParameterAccessor, conditions []Condition) (Query, error) {
	q := Query{
		Sort:        accessor.GetSort(),
		Pageable:    accessor.GetPageable(),
		MaxDistance: accessor.GetMaxDistance(),
	}

	for _, cond := range conditions {
		value, err := accessor.GetBindableValue(cond.Position)
		if err != nil {
			return Query{}, err
		}
		q.Conditions = append(q.Conditions, BoundCondition{
			Field: cond.Field,
			Op:    cond.Op,
			Value: value,
		})
	}

	return q, nil
}
