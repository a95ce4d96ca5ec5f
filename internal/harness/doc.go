// Package harness runs YAML conformance scenarios against the function
// registry.
//
// A scenario names a function and lists cases. Each case supplies either a
// single input or an explicit argument list, and expects either an output
// (compared element wise within a tolerance, shapes exactly) or an error
// code:
//
//	name: exp_basics
//	description: exp over scalars and containers
//	fn: exp
//	cases:
//	  - name: zero
//	    input: 0
//	    expect: 1
//	  - name: two arguments
//	    args: [1, 2]
//	    error: ARITY
//
// Every run is journaled to a fresh in-memory store and the report read back
// from it, so golden snapshots (RunWithGolden) reflect exactly what the
// journal persists.
package harness
