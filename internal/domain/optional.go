package domain

// Opt is a present/absent wrapper used by patch types to distinguish
// "leave this field unchanged" from "set this field" — including setting a
// nullable field to nil, which a plain pointer cannot express on its own.
type Opt[T any] struct {
	value T
	set   bool
}

// Some wraps a value in a present Opt.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Get returns the wrapped value and whether it was set.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the Opt carries a value.
func (o Opt[T]) IsSet() bool {
	return o.set
}
