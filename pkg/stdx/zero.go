package stdx

// Zero returns the zero value of T, e.g. the value half of a failed
// comma-ok receive.
func Zero[T any]() T {
	var zero T
	return zero
}

// Or returns v unless it is the zero value of T, in which case it returns
// fallback.
func Or[T comparable](v, fallback T) T {
	if v == Zero[T]() {
		return fallback
	}
	return v
}
