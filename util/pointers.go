package util

// Ptr returns a pointer to v. Used for optional config values that need to
// tell "unset" from the zero value.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr returns *p, or fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
