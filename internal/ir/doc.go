// Package ir provides the foundational vocabulary of the PGQL expression IR.
//
// This package contains plain value types only: the expression Kind
// enumeration with its arity table, resolved QueryVariable references,
// temporal literal payloads, and the canonical JSON document model used for
// content-addressed fingerprints. All other internal packages import ir; ir
// imports nothing internal.
//
// Key design constraints:
//   - Every type here is comparable and immutable once constructed
//   - QueryVariable is copied by value into expressions, never referenced
//   - No floats in the canonical document model; decimals travel as strings
package ir
