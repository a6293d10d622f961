// Package queryir provides the expression intermediate representation (IR)
// of the PGQL front end.
//
// A parsed expression is an immutable tree of Expr nodes. The tree is built
// bottom-up by a producer (the pgql parser, or code calling the New*
// constructors directly) and then read by any number of consumers: the
// canonical printer, the validator, the SQL lowering, the query cache.
//
//	[pgql.ParseExpr] -> [queryir.Expr] -> [pgql.Print]
//	                                   -> [queryir.Validate]
//	                                   -> [querysql.SQLCompiler]
//	                                   -> [cache.Cache]
//
// NODE MODEL:
//
// Expr is a sealed interface: only types in this package implement it, one
// struct per ir.Kind. Each struct embeds the shape of its arity (leaf, unary,
// pair or variadic) and adds its typed payload, if any. Constructors check
// shape and payload, so a node's kind and its runtime shape always agree:
//
//   - New* constructors panic with a *BuildError on a nil operand or an
//     invalid payload. They are meant for code that builds trees from values
//     it already trusts.
//   - Build takes the kind, children and payload as run-time values and
//     returns the *BuildError instead.
//
// Errors wrap ErrInvalidArity, ErrInvalidPayloadType or
// ErrUnresolvedVariable. A failed construction never touches trees built
// earlier.
//
// TRAVERSAL:
//
// Visitor has one method per kind. Expr.Accept calls the matching method
// and does not recurse; the visitor decides how to walk the children.
// Adding a kind is a compile error in every Visitor until it is handled.
// Walk and Inspect cover the cases where pre-order over Children is enough.
//
// EQUALITY AND HASHING:
//
// DeepEqual compares kind, payload and children recursively; operand order
// matters. Hash is an xxhash of kind, payload and child hashes, computed once
// at construction, so equal trees have equal hashes and reading a hash is
// O(1). Decimals compare by IEEE bit pattern. Fingerprint is the persistent
// counterpart: a SHA-256 over canonical JSON, stable across processes.
//
// CONCURRENCY:
//
// Trees are never mutated after construction and may be shared between
// goroutines without locking.
package queryir
