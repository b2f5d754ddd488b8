package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingArgument is wrapped by a ParseError for an absent positional argument.
var ErrMissingArgument = errors.New("missing argument")

// ParseError reports a positional argument that is absent or not a base-10 integer.
type ParseError struct {
	Arg   string // argument name, "N" or "sumFlag"
	Value string // raw text; empty when missing
	Err   error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrMissingArgument) {
		return fmt.Sprintf("parse %s: %v", e.Arg, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Arg, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Args are the two positional arguments of the driver.
type Args struct {
	N   int
	Sum bool
}

// ParseArgs reads <N> <sumFlag> from args. Both are base-10 integers;
// any nonzero sumFlag enables summation. Arguments past the second are ignored.
func ParseArgs(args []string) (Args, error) {
	n, err := parseIntArg(args, 0, "N")
	if err != nil {
		return Args{}, err
	}
	flag, err := parseIntArg(args, 1, "sumFlag")
	if err != nil {
		return Args{}, err
	}
	return Args{N: n, Sum: flag != 0}, nil
}

func parseIntArg(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, &ParseError{Arg: name, Err: ErrMissingArgument}
	}
	v, err := strconv.ParseInt(args[i], 10, strconv.IntSize)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Arg: name, Value: args[i], Err: err}
	}
	return int(v), nil
}
