package docbind

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/docbind/types"
)

// ErrPositionOutOfRange is returned when a bindable value is requested at
// a position outside the parameter list.
var ErrPositionOutOfRange = errors.New("parameter position out of range")

// ErrIteratorExhausted is returned by Next when no values remain.
var ErrIteratorExhausted = errors.New("parameter iterator exhausted")

// ErrNoCurrentElement is returned by Remove before Next has been called
// or when the current element was already removed.
var ErrNoCurrentElement = errors.New("no current element to remove")

// ParameterList is a slice-backed ParameterAccessor over the ordered
// values of a call site, optionally carrying paging, ordering and a
// proximity bound.
type ParameterList struct {
	values      []interface{}
	pageable    *types.Pageable
	sort        types.Sort
	maxDistance *types.Distance
}

// ParameterListOption configures a ParameterList.
type ParameterListOption func(*ParameterList)

// WithPageable attaches a result window.
func WithPageable(p types.Pageable) ParameterListOption {
	return func(l *ParameterList) {
		l.pageable = &p
	}
}

// WithSort attaches an ordering.
func WithSort(s types.Sort) ParameterListOption {
	return func(l *ParameterList) {
		l.sort = s
	}
}

// WithMaxDistance attaches a proximity bound.
func WithMaxDistance(d types.Distance) ParameterListOption {
	return func(l *ParameterList) {
		l.maxDistance = &d
	}
}

// NewParameterList creates an accessor over the given values.
func NewParameterList(values []interface{}, opts ...ParameterListOption) *ParameterList {
	list := &ParameterList{values: values}
	for _, opt := range opts {
		opt(list)
	}
	return list
}

// GetBindableValue implements ParameterAccessor.
func (l *ParameterList) GetBindableValue(position int) (interface{}, error) {
	if position < 0 || position >= len(l.values) {
		return nil, fmt.Errorf("%w: %d (have %d parameters)", ErrPositionOutOfRange, position, len(l.values))
	}
	return l.values[position], nil
}

// GetPageable implements ParameterAccessor.
func (l *ParameterList) GetPageable() *types.Pageable {
	return l.pageable
}

// GetSort implements ParameterAccessor.
func (l *ParameterList) GetSort() types.Sort {
	return l.sort
}

// GetMaxDistance implements ParameterAccessor.
func (l *ParameterList) GetMaxDistance() *types.Distance {
	return l.maxDistance
}

// Iterator implements ParameterAccessor. The cursor supports Remove,
// which deletes the value Next last returned from the list.
func (l *ParameterList) Iterator() ParameterIterator {
	return &listIterator{list: l, next: 0, current: -1}
}

type listIterator struct {
	list *ParameterList
	// next is the position Next will return; current is the position it
	// last returned, -1 when there is none.
	next    int
	current int
}

func (it *listIterator) HasNext() bool {
	return it.next < len(it.list.values)
}

func (it *listIterator) Next() (interface{}, error) {
	if it.next >= len(it.list.values) {
		return nil, ErrIteratorExhausted
	}
	value := it.list.values[it.next]
	it.current = it.next
	it.next++
	return value, nil
}

func (it *listIterator) Remove() error {
	if it.current < 0 {
		return ErrNoCurrentElement
	}
	values := it.list.values
	it.list.values = append(values[:it.current], values[it.current+1:]...)
	it.next = it.current
	it.current = -1
	return nil
}
