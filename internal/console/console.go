// Package console is the replaykk shell. It runs replay store commands either
// from a script or interactively at a prompt with line editing, completion and
// history.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/verbosity"

	"github.com/peterh/liner"
)

// Options changes how an interactive session behaves.
type Options struct {
	// Version is shown in the greeting.
	Version string

	// History turns on saving the command history to the history document in
	// the store's base directory.
	History bool
}

type consoleState struct {
	store       *replays.Store
	out         verbosity.OutputWriter
	interactive bool
	running     bool         // only valid if in interactive mode
	prompt      *liner.State // only valid if in interactive mode
	history     *historyDoc  // nil if history is not being saved
}

// ScriptError is returned by ExecuteScript when a command fails. Err is the
// error from the command itself.
type ScriptError struct {
	Line int
	Err  error
}

func (se *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %v", se.Line, se.Err)
}

func (se *ScriptError) Unwrap() error {
	return se.Err
}

func normalizeLine(line string) string {
	line = strings.TrimFunc(line, unicode.IsSpace)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	return line
}

func executeLine(state *consoleState, line string) (cmdOutput string, err error) {
	normalLine := normalizeLine(line)
	if normalLine == "" {
		state.out.Trace("ignoring empty input")
		return "", nil
	}
	return commands.execute(state, normalLine)
}

// ExecuteScript runs every command read from r, one per line, against store.
// Blank lines and lines starting with "#" are skipped.
//
// Each command's output is written as an INFO-level message to out. Execution
// stops at the first command that fails; the returned error is then a
// *ScriptError wrapping the command's error, so errors.Is and replays.KindOf
// still see what went wrong.
//
// Returns the number of lines processed successfully.
func ExecuteScript(r io.Reader, store *replays.Store, out verbosity.OutputWriter) (lines int, err error) {
	state := &consoleState{store: store, out: out, interactive: false}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		cmdOutput, err := executeLine(state, scanner.Text())
		if err != nil {
			return lineNum - 1, &ScriptError{Line: lineNum, Err: err}
		}
		showScriptLineOutput(out, cmdOutput)
	}
	if err := scanner.Err(); err != nil {
		return lineNum, err
	}
	return lineNum, nil
}

// StartPrompt runs an interactive session against store until the user exits
// or input ends.
func StartPrompt(store *replays.Store, out verbosity.OutputWriter, opts Options) {
	prefix := "replaykk> "

	state := consoleState{running: true, store: store, out: out, interactive: true}
	prompt := liner.NewLiner()
	defer prompt.Close()
	state.prompt = prompt
	prompt.SetCtrlCAborts(true)
	prompt.SetTabCompletionStyle(liner.TabPrints)

	prompt.SetCompleter(func(line string) []string {
		return autoComplete(&state, line)
	})
	if opts.History {
		state.history = newHistoryDoc(store.BaseDir())
		state.loadHistory()
	}

	state.out.Info("[replaykk v%v]", opts.Version)
	state.out.Info("Replays in %s", store.RecordsDir())
	state.out.Info("HELP for help.")

	for state.running {
		cmd, err := prompt.Prompt(prefix)
		if err == liner.ErrPromptAborted {
			state.out.Debug("console was aborted")
			state.running = false
			continue
		} else if err == io.EOF {
			state.out.Debug("console hit EOF")
			state.running = false
			continue
		} else if err != nil {
			state.out.Error("reading input: %v", err)
			state.running = false
			continue
		}

		if normalizeLine(cmd) == "" {
			state.out.Trace("ignoring empty input")
			continue
		}

		prompt.AppendHistory(cmd)
		state.writeHistory()

		cmdOutput, err := executeLine(&state, cmd)
		if err != nil {
			showError(state.out, err)
		} else if cmdOutput != "" {
			fmt.Fprintf(stdoutOf(state.out), "%s\n", cmdOutput)
		}
	}
}

// showError prints err with wording that depends on what kind of store
// failure it was.
func showError(out verbosity.OutputWriter, err error) {
	switch replays.KindOf(err) {
	case replays.NotFound:
		out.Error("replay not found: %v", err)
	case replays.Corrupt:
		out.Error("replay could not be read: %v", err)
	case replays.IOError:
		out.Error("storage failed: %v", err)
	case replays.Invalid:
		out.Error("replay could not be saved: %v", err)
	default:
		out.Error("%v", err)
	}
}

func stdoutOf(out verbosity.OutputWriter) io.Writer {
	if out.Stdout != nil {
		return out.Stdout
	}
	return os.Stdout
}

func showScriptLineOutput(out verbosity.OutputWriter, cmdOutput string) {
	if cmdOutput != "" {
		out.Info("%s", cmdOutput)
	}
}
