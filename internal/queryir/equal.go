package queryir

// DeepEqual reports whether a and b are structurally equal: the same kind at
// every position, equal payloads and pairwise equal children in order.
//
// It is derived from the uniform node shape and works for every kind without
// per-kind code. Cached hashes short-circuit most unequal comparisons.
func DeepEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || a.Hash() != b.Hash() {
		return false
	}
	if a.payload() != b.payload() {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !DeepEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
