// Package docbind converts call-site parameter values into the document
// store's native representation so they can be bound into queries.
//
// The central piece is ConvertingParameterAccessor, a decorator over a
// ParameterAccessor that routes every bindable value through a Writer and
// strips embedded type-discriminator keys from the result. Type keys are
// written by polymorphism-aware writers so the store can reconstruct the
// original Go type on read-back; inside a query parameter they would only
// prevent documents from matching, so they are removed before binding.
package docbind
