package docbind

import (
	"github.com/arthur-debert/docbind/types"
)

// ParameterAccessor provides ordered access to the parameter values of a
// data-access call, plus the paging, ordering and proximity settings that
// ride along with them.
type ParameterAccessor interface {
	// GetBindableValue returns the value at the given zero-based
	// position. Positions outside the parameter list are an error.
	GetBindableValue(position int) (interface{}, error)

	// GetPageable returns the requested result window, or nil.
	GetPageable() *types.Pageable

	// GetSort returns the requested ordering, empty when none.
	GetSort() types.Sort

	// GetMaxDistance returns the proximity bound, or nil.
	GetMaxDistance() *types.Distance

	// Iterator returns a fresh cursor over the parameter values.
	Iterator() ParameterIterator
}

// ParameterIterator is a cursor over parameter values.
type ParameterIterator interface {
	// HasNext reports whether another value remains.
	HasNext() bool

	// Next advances the cursor and returns the next raw value.
	// Calling Next on an exhausted cursor is an error.
	Next() (interface{}, error)

	// Remove removes the value the cursor last returned, when the
	// underlying accessor supports removal.
	Remove() error
}

// ConvertingParameterAccessor decorates a ParameterAccessor so that every
// bindable value is converted to the store's native representation, with
// type-discriminator keys stripped, on the way out. Paging, ordering and
// max-distance pass straight through.
//
// The accessor holds no state beyond its two references and never caches
// conversion results; each retrieval re-runs the writer.
type ConvertingParameterAccessor struct {
	writer   Writer
	delegate ParameterAccessor
}

// NewConvertingParameterAccessor creates a converting decorator over
// delegate using the given writer.
func NewConvertingParameterAccessor(writer Writer, delegate ParameterAccessor) *ConvertingParameterAccessor {
	return &ConvertingParameterAccessor{
		writer:   writer,
		delegate: delegate,
	}
}

// GetBindableValue returns the converted value at the given position.
// Positional errors from the delegate and conversion errors from the
// writer are propagated unwrapped.
func (a *ConvertingParameterAccessor) GetBindableValue(position int) (interface{}, error) {
	value, err := a.delegate.GetBindableValue(position)
	if err != nil {
		return nil, err
	}
	return Convert(a.writer, value)
}

// GetPageable returns the delegate's result window unmodified.
func (a *ConvertingParameterAccessor) GetPageable() *types.Pageable {
	return a.delegate.GetPageable()
}

// GetSort returns the delegate's ordering unmodified.
func (a *ConvertingParameterAccessor) GetSort() types.Sort {
	return a.delegate.GetSort()
}

// GetMaxDistance returns the delegate's proximity bound unmodified.
func (a *ConvertingParameterAccessor) GetMaxDistance() *types.Distance {
	return a.delegate.GetMaxDistance()
}

// Iterator returns a converting cursor over the delegate's values.
func (a *ConvertingParameterAccessor) Iterator() ParameterIterator {
	return a.ConvertingIterator()
}

// ConvertingIterator returns the iterator with its concrete type so
// callers can reach NextConverted without a type assertion.
func (a *ConvertingParameterAccessor) ConvertingIterator() *ConvertingIterator {
	return &ConvertingIterator{
		writer:   a.writer,
		delegate: a.delegate.Iterator(),
	}
}

// ConvertingIterator wraps a delegate cursor and adds NextConverted.
// Next and NextConverted consume the same underlying cursor; calling
// either advances it by one element.
type ConvertingIterator struct {
	writer   Writer
	delegate ParameterIterator
}

// HasNext reports whether the delegate cursor has another value.
func (it *ConvertingIterator) HasNext() bool {
	return it.delegate.HasNext()
}

// Next advances the cursor and returns the raw, unconverted value.
func (it *ConvertingIterator) Next() (interface{}, error) {
	return it.delegate.Next()
}

// NextConverted advances the cursor and returns the converted value.
func (it *ConvertingIterator) NextConverted() (interface{}, error) {
	value, err := it.delegate.Next()
	if err != nil {
		return nil, err
	}
	return Convert(it.writer, value)
}

// Remove forwards removal to the delegate cursor.
func (it *ConvertingIterator) Remove() error {
	return it.delegate.Remove()
}
