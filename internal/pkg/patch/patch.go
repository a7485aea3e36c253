// Package patch holds helpers for applying partial updates, where
// request fields are pointers and nil means "keep the current value".
package patch

// Coalesce dereferences ptr when set, falling back otherwise.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
