package linkedinservice

// move returns a copy of s with the element at from removed and reinserted at
// to. Both indices must be in range.
func move[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)

	item := s[from]
	out = append(out[:to], append([]T{item}, out[to:]...)...)

	return out
}
