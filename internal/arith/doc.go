// Package arith implements elementwise arithmetic functions over values.
//
// Each function classifies its argument with value.Classify and dispatches on
// the resulting Kind: scalars go to a closed-form evaluator, containers are
// handed to collection.DeepMap with the function itself as the leaf
// function. All functions are pure and safe for concurrent use.
//
// Errors are returned, never panicked: *ArityError for a wrong argument
// count and *UnsupportedTypeError for an argument of an unaccepted variant.
// Neither is recovered internally.
package arith
