// Package value provides the closed set of values the math functions operate on.
//
// This package contains the value model only. Function packages (collection,
// arith) import value; value imports nothing internal.
//
// Variants:
//   - Real: IEEE double-precision number
//   - Bool: logical value, coerced to 0 or 1 by numeric functions
//   - Complex: re + im·i with float64 parts
//   - BigDecimal: arbitrary-precision decimal (github.com/cockroachdb/apd/v3)
//   - Array: ordered sequence, nested to any depth
//   - Matrix: rectangular nested data with explicit size
//   - String, Null: representable but rejected by numeric functions
//
// Classify maps any Value to exactly one Kind. Classification goes through
// capability interfaces (Complexer, Downgrader, Container) rather than
// concrete types, so a new representation that implements one of them is
// picked up without touching the dispatch code.
//
// Values are never mutated by this module. Operations that produce a
// container always allocate a new one.
package value
