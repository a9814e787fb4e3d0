package bucache

// coalesce substitutes def for a zero-valued v; the Options defaulting rule.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
