package main

import (
	"context"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

var negativeInt = regexp.MustCompile(`^-[0-9]+$`)

// reorderNegatives returns args with every flag moved ahead of a "--" and the
// positionals after it, so pflag never reads a negative N or sumFlag as a
// shorthand flag. args is returned unchanged when no positional is a
// negative integer.
func reorderNegatives(fs *pflag.FlagSet, args []string) []string {
	var flags, positionals []string
	needed := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case negativeInt.MatchString(arg):
			positionals = append(positionals, arg)
			needed = true
		case len(arg) > 1 && arg[0] == '-':
			flags = append(flags, arg)
			if takesValue(fs, arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positionals = append(positionals, arg)
		}
	}

	if !needed {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positionals...)
}

// takesValue reports whether arg is a known non-boolean flag whose value is
// the next token ("--debounce 1s", not "--debounce=1s").
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	if strings.HasPrefix(arg, "--") {
		f = fs.Lookup(arg[2:])
	} else if len(arg) == 2 {
		f = fs.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

// execute runs cmd with args after moving negative positionals out of pflag's way.
func execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(reorderNegatives(cmd.Flags(), args))
	return cmd.ExecuteContext(ctx)
}
