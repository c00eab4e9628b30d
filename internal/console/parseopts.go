package console

import "fmt"

// parse the short options out of the given argument. returns nil for anything
// that is not a cluster of short options, such as "-" or "--x".
func parseShortOpts(s string) []rune {
	var opts []rune
	for idx, ch := range s {
		if idx == 0 {
			if ch != '-' {
				return nil
			}
			continue
		}
		if ch == '-' {
			return nil
		}
		opts = append(opts, ch)
	}
	return opts
}

// argSpec says what a shell command accepts after its name.
type argSpec struct {
	// flags is every short option the command understands.
	flags string

	// names of the positional arguments, used in error messages. The first
	// numRequired of them must be given.
	positional  []string
	numRequired int
}

type parsedArgs struct {
	flags map[rune]bool
	pos   []string
}

func (pa parsedArgs) has(flag rune) bool {
	return pa.flags[flag]
}

// parseArgs splits argv (with the command name at index 0) into options and
// positional arguments. "--" ends option parsing, so a key that starts with
// a dash can still be given.
func (as argSpec) parseArgs(argv []string) (parsedArgs, error) {
	pa := parsedArgs{flags: map[rune]bool{}}

	parsingOpts := true
	for _, arg := range argv[1:] {
		if parsingOpts {
			if arg == "--" {
				parsingOpts = false
				continue
			}
			if opts := parseShortOpts(arg); len(opts) > 0 {
				for _, ch := range opts {
					if !containsRune(as.flags, ch) {
						return pa, fmt.Errorf("unknown option -%c", ch)
					}
					pa.flags[ch] = true
				}
				continue
			}
		}
		if len(pa.pos) >= len(as.positional) {
			switch len(as.positional) {
			case 0:
				return pa, fmt.Errorf("unknown argument %q; command doesn't take any arguments", arg)
			case 1:
				return pa, fmt.Errorf("unknown argument %q; command only takes 1 argument", arg)
			default:
				return pa, fmt.Errorf("unknown argument %q; command only takes %d arguments", arg, len(as.positional))
			}
		}
		pa.pos = append(pa.pos, arg)
	}

	if len(pa.pos) < as.numRequired {
		return pa, fmt.Errorf("missing %s", as.positional[len(pa.pos)])
	}
	return pa, nil
}

func containsRune(s string, r rune) bool {
	for _, ch := range s {
		if ch == r {
			return true
		}
	}
	return false
}
