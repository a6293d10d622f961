// Package store provides a SQLite-backed property graph that evaluates
// expression filters.
//
// The graph has two tables:
//   - vertices(id, label, props): labeled nodes
//   - edges(id, src, dst, label, props): labeled, directed edges between
//     stored vertices
//
// props holds an RFC 8785 canonical JSON object, so equal property sets are
// stored byte for byte the same.
//
// # Matching
//
// MatchVertices and MatchEdges bind a single query variable to each row and
// keep the rows for which a filter expression holds. Filters are lowered to
// SQL by package querysql; values are always passed as parameters.
//
//   - All queries are ordered by id ASC COLLATE BINARY for deterministic
//     results
//   - `x =~ p` runs through a REGEXP function registered on every
//     connection; the pattern must match the whole value
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
