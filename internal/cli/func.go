package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonphnt/mathjs/internal/arith"
	"github.com/sonphnt/mathjs/internal/collection"
	"github.com/sonphnt/mathjs/internal/value"
)

// NewFuncCommand creates the command evaluating the registered function
// name. Every positional argument is passed to the function, so a wrong
// argument count surfaces as the function's own arity error.
func NewFuncCommand(opts *RootOptions, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <value-json>...",
		Short: fmt.Sprintf("Evaluate %s", name),
		Long: fmt.Sprintf(`Evaluate %[1]s on the given JSON values and print the result.

Containers are evaluated element wise.

Arguments starting with "-" are read as flags, so negative numbers go
after "--".

Exit codes:
  0 - Evaluation succeeded
  1 - The function rejected its arguments
  2 - An argument is not a valid value or flag

Examples:
  mathjs %[1]s 2
  mathjs %[1]s '[1, [2, true]]'
  mathjs %[1]s '{"mathjs":"Complex","re":0,"im":3.141592653589793}'
  mathjs %[1]s -- -1
  mathjs %[1]s 1 --format json`, name),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(opts, name, args, cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		msg := fmt.Sprintf("invalid flag (put negative numbers after --, as in: mathjs %s -- -1)", name)
		return WrapExitError(ExitCommandError, msg, err)
	})
	return cmd
}

func runFunc(opts *RootOptions, name string, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	fn, ok := arith.Lookup(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown function %q", name))
	}

	vals := make([]value.Value, len(args))
	for i, arg := range args {
		v, err := value.Unmarshal([]byte(arg))
		if err != nil {
			msg := fmt.Sprintf("argument %d: %v", i+1, err)
			if ferr := formatter.Error(ErrCodeBadValue, msg); ferr != nil {
				return ferr
			}
			return NewExitError(ExitCommandError, msg)
		}
		formatter.VerboseLog("argument %d: %s shape=%v leaves=%d", i+1, value.TypeOf(v), value.Shape(v), collection.Leaves(v))
		vals[i] = v
	}

	out, err := fn(vals...)
	if err != nil {
		code := string(arith.CodeOf(err))
		if code == "" {
			code = ErrCodeGeneric
		}
		if ferr := formatter.Error(code, err.Error()); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, name+" failed", err)
	}

	return formatter.Value(out)
}
