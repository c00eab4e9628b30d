package console

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	"dekarrin/replaykk/internal/misc"
	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/value"
	"dekarrin/replaykk/internal/verbosity"

	"github.com/google/shlex"
)

type command struct {
	interactiveOnly bool

	// argv[0] is always the command name in uppercase.
	exec func(state *consoleState, args parsedArgs) (string, error)

	args argSpec

	helpDesc string

	// string shown after this name of the command in help; can be used to give variables.
	helpInvoke string

	// setting this to non-zero will make exec and helpDesc ignored; they will be taken from the command
	// given here. Caveat: string given here must exist as a key in the 'commands' map.
	aliasFor string

	// completeArgs, if set, gives completions for the positional argument at
	// index pos that starts with partial.
	completeArgs func(state *consoleState, pos int, partial string) []string
}

type commandList map[string]command

func (cl commandList) parseCommand(in string) (isCommand bool, cmdToExec command, argv []string, err error) {
	cmdTokens, err := shlex.Split(in)
	if err != nil {
		return false, cmdToExec, nil, err
	}
	if len(cmdTokens) < 1 {
		return false, cmdToExec, nil, nil
	}

	firstToken := strings.ToUpper(cmdTokens[0])
	cmd, ok := cl[firstToken]
	if !ok {
		return false, cmdToExec, cmdTokens, nil
	}
	if cmd.aliasFor != "" {
		actualCmd, ok := cl[cmd.aliasFor]
		if !ok {
			panic("command is alias for " + cmd.aliasFor + " but that command doesn't exist")
		}
		cmd = actualCmd
	}
	cmdTokens[0] = firstToken
	return true, cmd, cmdTokens, nil
}

func (cl commandList) execute(state *consoleState, in string) (out string, err error) {
	parsed, cmd, argv, err := cl.parseCommand(in)
	if err != nil {
		return "", fmt.Errorf("could not parse input: %w", err)
	}
	if !parsed {
		if len(argv) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("unknown command %q; try HELP for a list of commands", argv[0])
	}

	if cmd.interactiveOnly && !state.interactive {
		aliasStr := strings.Join(cl.getAllAliasesOf(argv[0]), "/")
		return "", fmt.Errorf("%s command only available in interactive mode", aliasStr)
	}

	args, err := cmd.args.parseArgs(argv)
	if err != nil {
		return "", fmt.Errorf("%s: %w", argv[0], err)
	}
	return cmd.exec(state, args)
}

func (cl commandList) getAllAliasesOf(cmdName string) []string {
	givenCmd, ok := cl[cmdName]
	if !ok {
		return []string{}
	}

	aliasTarget := cmdName
	if givenCmd.aliasFor != "" {
		aliasTarget = givenCmd.aliasFor
	}
	aliases := []string{}

	for cmdName, cmd := range cl {
		if cmd.aliasFor == aliasTarget {
			aliases = append(aliases, cmdName)
		}
	}

	sort.Strings(aliases)
	aliases = append([]string{aliasTarget}, aliases...)
	return aliases
}

func (cl commandList) names() []string {
	keys := make([]string, len(cl))
	idx := 0
	for k := range cl {
		keys[idx] = k
		idx++
	}
	sort.Strings(keys)
	return keys
}

var commands commandList

func init() {
	// assigned in init to avoid an initialization loop through HELP
	commands = commandList{
		"LIST": {
			helpDesc:   "Show every replay with its name. With -k, show only the keys and do not read the records.",
			helpInvoke: "[-k]",
			args:       argSpec{flags: "k"},
			exec:       executeCommandList,
		},
		"KEYS": {
			helpDesc: "Show the key of every replay.",
			exec: func(state *consoleState, args parsedArgs) (string, error) {
				return listKeys(state)
			},
		},
		"GET": {
			helpDesc:     "Show the replay stored under KEY as YAML. With -x, show its CBOR encoding in hex instead.",
			helpInvoke:   "[-x] KEY",
			args:         argSpec{flags: "x", positional: []string{"KEY"}, numRequired: 1},
			exec:         executeCommandGet,
			completeArgs: completeKeyArg,
		},
		"PUT": {
			helpDesc:     "Read a replay from the YAML file FILE and store it under KEY, replacing any replay already there.",
			helpInvoke:   "KEY FILE",
			args:         argSpec{positional: []string{"KEY", "FILE"}, numRequired: 2},
			exec:         executeCommandPut,
			completeArgs: completeKeyThenFileArg,
		},
		"NEW": {
			helpDesc:     "Read a replay from the YAML file FILE and store it under a newly generated key, which is shown.",
			helpInvoke:   "FILE",
			args:         argSpec{positional: []string{"FILE"}, numRequired: 1},
			exec:         executeCommandNew,
			completeArgs: completeFileArg,
		},
		"DELETE": {
			helpDesc:     "Remove the replay stored under KEY.",
			helpInvoke:   "KEY",
			args:         argSpec{positional: []string{"KEY"}, numRequired: 1},
			exec:         executeCommandDelete,
			completeArgs: completeKeyArg,
		},
		"RM": {
			aliasFor: "DELETE",
		},
		"INFO": {
			helpDesc:     "Show the size, modification time, and BLAKE2b digest of the file holding the replay under KEY.",
			helpInvoke:   "KEY",
			args:         argSpec{positional: []string{"KEY"}, numRequired: 1},
			exec:         executeCommandInfo,
			completeArgs: completeKeyArg,
		},
		"CLEARHIST": {
			interactiveOnly: true,
			helpDesc:        "Clear the command history.",
			exec:            executeCommandClearhist,
		},
		"HELP": {
			helpDesc:   "Show this help, or the help for only COMMAND.",
			helpInvoke: "[COMMAND]",
			args:       argSpec{positional: []string{"COMMAND"}},
			exec: func(state *consoleState, args parsedArgs) (string, error) {
				topic := ""
				if len(args.pos) > 0 {
					topic = args.pos[0]
				}
				return showHelp(topic), nil
			},
		},
		"EXIT": {
			interactiveOnly: true,
			helpDesc:        "Exit the interactive session.",
			exec: func(state *consoleState, args parsedArgs) (string, error) {
				state.running = false
				return "", nil
			},
		},
		"QUIT": {
			aliasFor: "EXIT",
		},
		"BYE": {
			aliasFor: "EXIT",
		},
	}
}

func executeCommandList(state *consoleState, args parsedArgs) (string, error) {
	if args.has('k') {
		return listKeys(state)
	}

	entries, err := state.store.List()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return state.out.Sprintf(verbosity.Info, "(no replays)"), nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	var sb strings.Builder
	for idx, e := range entries {
		sb.WriteString(QuoteKey(e.Key))
		sb.WriteRune('\t')
		sb.WriteString(Summarize(e.Value))
		if idx+1 < len(entries) {
			sb.WriteRune('\n')
		}
	}
	state.out.Debug("listed %s", misc.CountOf("replay", "replays", len(entries)))
	return sb.String(), nil
}

func listKeys(state *consoleState) (string, error) {
	keys, err := state.store.Keys()
	if err != nil {
		return "", err
	}
	quoted := make([]string, len(keys))
	for idx := range keys {
		quoted[idx] = QuoteKey(keys[idx])
	}
	return strings.Join(quoted, "\n"), nil
}

func executeCommandGet(state *consoleState, args parsedArgs) (string, error) {
	v, err := state.store.Get(args.pos[0])
	if err != nil {
		return "", err
	}
	format := FormatYAML
	if args.has('x') {
		format = FormatHex
	}
	return FormatValue(v, format)
}

func executeCommandPut(state *consoleState, args parsedArgs) (string, error) {
	key, file := args.pos[0], args.pos[1]
	v, err := ReadValueFile(file)
	if err != nil {
		return "", err
	}
	if err := state.store.Put(key, v); err != nil {
		return "", err
	}
	return state.out.Sprintf(verbosity.Info, "Stored replay %s", QuoteKey(key)), nil
}

func executeCommandNew(state *consoleState, args parsedArgs) (string, error) {
	v, err := ReadValueFile(args.pos[0])
	if err != nil {
		return "", err
	}
	key, err := state.store.PutNew(v)
	if err != nil {
		return "", err
	}
	return key, nil
}

func executeCommandDelete(state *consoleState, args parsedArgs) (string, error) {
	key := args.pos[0]
	if err := state.store.Delete(key); err != nil {
		return "", err
	}
	return state.out.Sprintf(verbosity.Info, "Deleted replay %s", QuoteKey(key)), nil
}

func executeCommandInfo(state *consoleState, args parsedArgs) (string, error) {
	info, err := state.store.Info(args.pos[0])
	if err != nil {
		return "", err
	}
	return FormatInfo(info), nil
}

func executeCommandClearhist(state *consoleState, args parsedArgs) (string, error) {
	state.prompt.ClearHistory()
	state.writeHistory()
	return state.out.Sprintf(verbosity.Info, "Command history has been cleared"), nil
}

// ReadValueFile loads a replay value from the YAML file at path. Content that
// is not YAML gives an error of kind replays.Invalid.
func ReadValueFile(path string) (value.Value, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	v, err := value.FromYAML(data)
	if err != nil {
		return value.Value{}, &replays.Error{Kind: replays.Invalid, Op: "read", Key: path, Err: err}
	}
	return v, nil
}
