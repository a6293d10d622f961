// Package pgql is the surface syntax of query expressions: a parser that
// builds queryir trees from PGQL text and a printer that writes them back.
//
// The printer emits a canonical form in which every binary operation is
// parenthesized, NOT is written as !, and keywords are upper case. The
// parser accepts the canonical form plus the usual conveniences:
//
//   - binary operators without parentheses, with PGQL precedence
//     (OR, AND, NOT, comparison, additive, multiplicative, unary)
//   - keywords in any case, <> for !=, NOT x for !x
//
// so that for every expression e
//
//	ParseExpr(Print(e), scope) is equal to e
//
// whenever scope declares the variables of e and e numbers its bind
// parameters from 0 in left-to-right order.
//
// Identifiers resolve against a Scope. The parser never invents a variable:
// an unknown name fails with queryir.ErrUnresolvedVariable.
package pgql
