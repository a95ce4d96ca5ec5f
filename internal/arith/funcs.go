package arith

import (
	"slices"

	"github.com/sonphnt/mathjs/internal/value"
)

// Func is the signature shared by all functions in this package.
type Func func(args ...value.Value) (value.Value, error)

// funcs maps function names to implementations. It is never written after
// initialization.
var funcs = map[string]Func{
	"exp": Exp,
	"log": Log,
}

// Lookup returns the function registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := funcs[name]
	return f, ok
}

// Names returns the available function names in sorted order.
func Names() []string {
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
