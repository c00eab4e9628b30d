package console

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

// autoComplete gives whole-line candidates for the partial line.
func autoComplete(state *consoleState, line string) []string {
	parts, err := shlex.Split(line)
	if err != nil {
		return nil
	}
	if len(parts) == 0 || (len(parts) == 1 && !strings.HasSuffix(line, " ")) {
		partial := ""
		if len(parts) == 1 {
			partial = parts[0]
		}
		return autoCompleteCommand(partial)
	}
	if strings.HasSuffix(line, " ") {
		parts = append(parts, "")
	}

	cmd, ok := commands[strings.ToUpper(parts[0])]
	if !ok {
		return nil
	}
	if cmd.aliasFor != "" {
		cmd = commands[cmd.aliasFor]
	}
	if cmd.completeArgs == nil {
		return nil
	}

	// options do not count as positional arguments
	var pos []string
	for _, p := range parts[1 : len(parts)-1] {
		if len(parseShortOpts(p)) == 0 {
			pos = append(pos, p)
		}
	}

	prefix := parts[0]
	for _, p := range parts[1 : len(parts)-1] {
		prefix += " " + QuoteKey(p)
	}

	var candidates []string
	for _, c := range cmd.completeArgs(state, len(pos), parts[len(parts)-1]) {
		candidates = append(candidates, prefix+" "+QuoteKey(c))
	}
	return candidates
}

func autoCompleteCommand(partial string) (candidates []string) {
	commandNames := commands.names()
	for _, word := range commandNames {
		if strings.HasPrefix(strings.ToLower(word), partial) {
			candidates = append(candidates, strings.ToLower(word))
		}
		if strings.HasPrefix(strings.ToUpper(word), partial) {
			candidates = append(candidates, strings.ToUpper(word))
		}
	}
	if len(candidates) == 0 {
		for _, word := range commandNames {
			if strings.HasPrefix(strings.ToUpper(word), strings.ToUpper(partial)) {
				candidates = append(candidates, strings.ToUpper(word))
			}
		}
	}
	return candidates
}

func completeKeyArg(state *consoleState, pos int, partial string) []string {
	if pos != 0 {
		return nil
	}
	keys, err := state.store.Keys()
	if err != nil {
		return nil
	}
	var candidates []string
	for _, k := range keys {
		if strings.HasPrefix(k, partial) {
			candidates = append(candidates, k)
		}
	}
	return candidates
}

func completeFileArg(state *consoleState, pos int, partial string) []string {
	if pos != 0 {
		return nil
	}
	return completeFilename(partial)
}

func completeKeyThenFileArg(state *consoleState, pos int, partial string) []string {
	if pos == 0 {
		return completeKeyArg(state, pos, partial)
	}
	if pos == 1 {
		return completeFilename(partial)
	}
	return nil
}

func completeFilename(partial string) []string {
	dir, base := filepath.Split(partial)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	files, err := ioutil.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var candidates []string
	for _, fi := range files {
		if !strings.HasPrefix(fi.Name(), base) {
			continue
		}
		name := dir + fi.Name()
		if fi.IsDir() {
			name += string(filepath.Separator)
		}
		candidates = append(candidates, name)
	}
	return candidates
}
