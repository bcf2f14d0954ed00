package reactor

import (
	"fmt"
	"reflect"
)

// Map derives a Computed holding fn applied to the value of c.
func Map[T, U any](c *Computed[T], fn func(T) U) *Computed[U] {
	return NewComputed(c.tr, func() U {
		return fn(c.Get())
	})
}

// Filter derives a Computed holding the value of c while pred accepts it and
// the zero value otherwise.
func Filter[T any](c *Computed[T], pred func(T) bool) *Computed[T] {
	return NewComputed(c.tr, func() T {
		v := c.Get()
		if !pred(v) {
			var zero T
			return zero
		}
		return v
	})
}

// MapItems derives a Computed applying fn to every element of c. The value
// of c must be a []E, otherwise ErrInvalidOperation is returned.
func MapItems[T, E, U any](c *Computed[T], fn func(E) U) (*Computed[[]U], error) {
	if _, err := itemsOf[E](c.Peek()); err != nil {
		return nil, err
	}
	return NewComputed(c.tr, func() []U {
		items := mustItems[E](c.Get())
		out := make([]U, len(items))
		for i, item := range items {
			out[i] = fn(item)
		}
		return out
	}), nil
}

// FilterItems derives a Computed keeping the elements of c that pred accepts.
func FilterItems[T, E any](c *Computed[T], pred func(E) bool) (*Computed[[]E], error) {
	if _, err := itemsOf[E](c.Peek()); err != nil {
		return nil, err
	}
	return NewComputed(c.tr, func() []E {
		return filterSlice(mustItems[E](c.Get()), pred)
	}), nil
}

// Every derives a Computed reporting whether pred accepts all elements of c.
// An empty slice yields true.
func Every[T, E any](c *Computed[T], pred func(E) bool) (*Computed[bool], error) {
	if _, err := itemsOf[E](c.Peek()); err != nil {
		return nil, err
	}
	return NewComputed(c.tr, func() bool {
		for _, item := range mustItems[E](c.Get()) {
			if !pred(item) {
				return false
			}
		}
		return true
	}), nil
}

// Some derives a Computed reporting whether pred accepts any element of c.
func Some[T, E any](c *Computed[T], pred func(E) bool) (*Computed[bool], error) {
	if _, err := itemsOf[E](c.Peek()); err != nil {
		return nil, err
	}
	return NewComputed(c.tr, func() bool {
		for _, item := range mustItems[E](c.Get()) {
			if pred(item) {
				return true
			}
		}
		return false
	}), nil
}

func itemsOf[E any](v any) ([]E, error) {
	items, ok := v.([]E)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %v", ErrInvalidOperation, v, reflect.TypeFor[[]E]())
	}
	return items, nil
}

// mustItems is used inside derived computations, where the source value was
// a slice when the derivation was built.
func mustItems[E any](v any) []E {
	items, err := itemsOf[E](v)
	if err != nil {
		panic(err)
	}
	return items
}

func filterSlice[E any](items []E, pred func(E) bool) []E {
	out := make([]E, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
