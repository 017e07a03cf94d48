package docbind

import (
	"errors"
	"testing"
)

func TestParameterList(t *testing.T) {
	t.Run("PositionalAccess", func(t *testing.T) {
		list := NewParameterList([]interface{}{"a", 2, true})

		for i, want := range []interface{}{"a", 2, true} {
			got, err := list.GetBindableValue(i)
			if err != nil {
				t.Fatalf("position %d: %v", i, err)
			}
			if got != want {
				t.Errorf("position %d: got %#v, want %#v", i, got, want)
			}
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		list := NewParameterList([]interface{}{"a"})

		for _, position := range []int{-1, 1, 100} {
			if _, err := list.GetBindableValue(position); !errors.Is(err, ErrPositionOutOfRange) {
				t.Errorf("position %d: expected ErrPositionOutOfRange, got %v", position, err)
			}
		}
	})

	t.Run("IteratorWalksInOrder", func(t *testing.T) {
		list := NewParameterList([]interface{}{"a", "b"})
		it := list.Iterator()

		for _, want := range []string{"a", "b"} {
			if !it.HasNext() {
				t.Fatal("iterator exhausted early")
			}
			got, err := it.Next()
			if err != nil {
				t.Fatalf("next failed: %v", err)
			}
			if got != want {
				t.Errorf("got %#v, want %q", got, want)
			}
		}

		if it.HasNext() {
			t.Error("expected exhausted iterator")
		}
		if _, err := it.Next(); !errors.Is(err, ErrIteratorExhausted) {
			t.Errorf("expected ErrIteratorExhausted, got %v", err)
		}
	})

	t.Run("IteratorsAreIndependent", func(t *testing.T) {
		list := NewParameterList([]interface{}{"a", "b"})

		first := list.Iterator()
		if _, err := first.Next(); err != nil {
			t.Fatalf("next failed: %v", err)
		}

		second := list.Iterator()
		got, err := second.Next()
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if got != "a" {
			t.Errorf("fresh iterator should start over, got %#v", got)
		}
	})

	t.Run("RemoveDeletesCurrentElement", func(t *testing.T) {
		list := NewParameterList([]interface{}{"a", "b", "c"})
		it := list.Iterator()

		if _, err := it.Next(); err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if err := it.Remove(); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		// The cursor continues from the element after the removed one.
		got, err := it.Next()
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if got != "b" {
			t.Errorf("expected b after removing a, got %#v", got)
		}
	})

	t.Run("RemoveWithoutNextFails", func(t *testing.T) {
		it := NewParameterList([]interface{}{"a"}).Iterator()
		if err := it.Remove(); !errors.Is(err, ErrNoCurrentElement) {
			t.Errorf("expected ErrNoCurrentElement, got %v", err)
		}
	})

	t.Run("DoubleRemoveFails", func(t *testing.T) {
		it := NewParameterList([]interface{}{"a", "b"}).Iterator()
		if _, err := it.Next(); err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if err := it.Remove(); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if err := it.Remove(); !errors.Is(err, ErrNoCurrentElement) {
			t.Errorf("expected ErrNoCurrentElement, got %v", err)
		}
	})
}
