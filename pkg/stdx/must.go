package stdx

// Must0 panics if err is not nil. Use it where an error means a broken
// internal invariant rather than a condition the caller can handle.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v, or panics if err is not nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
