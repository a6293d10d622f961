package queryir

// Walk calls v for e and then for every descendant of e in pre-order,
// operands left to right. Walk is for visitors that do not recurse
// themselves; a recursing visitor should call e.Accept directly.
func Walk(v Visitor, e Expr) {
	Inspect(e, func(n Expr) bool {
		n.Accept(v)
		return true
	})
}

// Inspect traverses e in pre-order, calling f for each node. If f returns
// false, the children of that node are skipped.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, c := range e.Children() {
		Inspect(c, f)
	}
}

// Count returns the number of nodes in e.
func Count(e Expr) int {
	n := 0
	Inspect(e, func(Expr) bool {
		n++
		return true
	})
	return n
}

// Depth returns the height of e; a leaf has depth 1.
func Depth(e Expr) int {
	if e == nil {
		return 0
	}
	deepest := 0
	for _, c := range e.Children() {
		if d := Depth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
