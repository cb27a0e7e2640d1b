// Package flagx lets several independent parsers share one command line.
//
// Each loader (JSON file, .env file, main flags) picks only the flags it owns
// out of os.Args and parses them with its own flag.FlagSet, so no loader fails
// on flags it does not know.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps the args whose flag name is in allowed, together with
// their values. Both "-name value" and "-name=value" forms are recognised;
// a following token that starts with '-' is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := names[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := names[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// lookup parses a single string flag registered under all of names.
// The last occurrence on the command line wins.
func lookup(args []string, names []string, usage string) string {
	var v string

	allowed := make([]string, 0, len(names))
	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&v, n, "", usage)
		allowed = append(allowed, "-"+n)
	}
	_ = fs.Parse(FilterArgs(args, allowed))

	return v
}

// ConfigPath returns the JSON config path given by -c or -config in args.
func ConfigPath(args []string) string {
	return lookup(args, []string{"config", "c"}, "path to JSON config file")
}

// EnvFilePath returns the dotenv path given by -e or -env in args.
func EnvFilePath(args []string) string {
	return lookup(args, []string{"env", "e"}, "path to .env file")
}

// JsonConfigFlags is ConfigPath over the process arguments.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}
