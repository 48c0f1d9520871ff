package domain

import "encoding/json"

// Optional holds a value that is only present when it was requested from the store.
// The zero value is "not fetched", which is distinct from a fetched zero value.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a fetched value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None is the explicit "not fetched" value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was fetched.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether the value was fetched.
func (o Optional[T]) Present() bool {
	return o.ok
}

// Ptr returns nil when not fetched; handy for omitempty JSON projections.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// FromPtr turns a nullable scan target into an Optional.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
