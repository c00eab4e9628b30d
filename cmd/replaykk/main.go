package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"dekarrin/replaykk/internal/config"
	"dekarrin/replaykk/internal/console"
	"dekarrin/replaykk/internal/misc"
	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/verbosity"

	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	currentVersion = "0.2.0"

	// ExitStatusInvalidValue is the exit status given when a value cannot be
	// stored as a replay.
	ExitStatusInvalidValue = 7

	// ExitStatusCorrupt is the exit status given when a stored replay cannot be
	// read.
	ExitStatusCorrupt = 6

	// ExitStatusNotFound is the exit status given when a replay does not exist.
	ExitStatusNotFound = 5

	// ExitStatusIOError is the exit status given by a failure to read or write a file.
	ExitStatusIOError = 4

	// ExitStatusArgumentsError is the exit status given when there is a problem parsing the arguments.
	ExitStatusArgumentsError = 3

	// ExitStatusScriptCommandError is the exit status given when there is a problem with a command in a script or passed directly to replaykk.
	ExitStatusScriptCommandError = 2

	// ExitStatusGenericError is the exit status given by an error not already covered by a more specific status code.
	ExitStatusGenericError = 1

	// ExitSuccess is the result for successful exit.
	ExitSuccess = 0
)

var returnCode int = ExitSuccess

// argumentsError marks a problem with what the user passed in rather than
// with the store.
type argumentsError struct {
	msg string
}

func (e argumentsError) Error() string {
	return e.msg
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking; don't let the check stop the panic
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	// global options
	configFlag := kingpin.Flag("config", "YAML configuration file to load settings from. Flags override anything set in it.").Short('c').Envar("REPLAYKK_CONFIG").ExistingFile()
	dirFlag := kingpin.Flag("dir", "base directory of the replay store; records are kept in its \"records\" subdirectory, even if the config file sets records_dir").Short('d').Envar("REPLAYKK_DIR").String()
	logFileFlag := kingpin.Flag("log", "create a detailed system log file at the given location").Short('l').OpenFile(os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	quietFlag := kingpin.Flag("quiet", "silence all output except for command results. Overrides verbose mode").Short('q').Bool()
	commandFlag := kingpin.Flag("command", "command(s) to execute, after which the program exits. Comes before script file execution if both set. If any command fails, this program will immediately terminate and return non-zero without executing the rest of the commands or scripts.").Short('C').Strings()
	scriptFileFlag := kingpin.Flag("script-file", "script(s) to execute, after which the program exits. Script files are executed in order they appear. If any command fails, this program will immediately terminate and return non-zero without executing the rest of the commands or scripts.").Short('f').ExistingFiles()
	verboseFlag := kingpin.Flag("verbose", "make output more verbose; up to 3 can be specified for increasingly verbose output").Short('v').Counter()

	initCmd := kingpin.Command("init", "create the replay store directories if they do not yet exist")

	listCmd := kingpin.Command("list", "show every stored replay")
	listKeysFlag := listCmd.Flag("keys", "show only the keys, without reading the replays").Short('k').Bool()

	getCmd := kingpin.Command("get", "show a stored replay")
	getFormatFlag := getCmd.Flag("format", "output format").Default(console.FormatYAML).Enum(console.FormatYAML, console.FormatHex, console.FormatText)
	getKeyArg := getCmd.Arg("key", "key of the replay").Required().String()

	putCmd := kingpin.Command("put", "store a replay read from a YAML file")
	putNewFlag := putCmd.Flag("new", "generate a new key instead of taking one; only FILE is given").Short('n').Bool()
	putArgs := putCmd.Arg("args", "KEY FILE, or just FILE when --new is set").Required().Strings()

	deleteCmd := kingpin.Command("delete", "delete a stored replay").Alias("rm")
	deleteKeyArg := deleteCmd.Arg("key", "key of the replay").Required().String()

	infoCmd := kingpin.Command("info", "show the size, modification time and digest of a stored replay")
	infoKeyArg := infoCmd.Arg("key", "key of the replay").Required().String()

	shellCmd := kingpin.Command("shell", "run replay shell commands interactively or from scripts").Default()

	kingpin.Version(currentVersion)
	kingpin.CommandLine.HelpFlag.Short('h')
	selected := kingpin.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			handleFatalErrorWithStatusCode(err, ExitStatusArgumentsError)
			return
		}
	}
	if *dirFlag != "" {
		cfg = cfg.WithBaseDir(*dirFlag)
	}

	outVerb := cfg.OutputVerbosity()
	if *quietFlag || *verboseFlag > 0 {
		outVerb = verbosity.ParseFromFlags(*quietFlag, *verboseFlag)
	}
	out := verbosity.OutputWriter{Verbosity: outVerb, AutoNewline: true, AutoCapitalize: true}

	if *logFileFlag != nil {
		out.StartLogging(*logFileFlag)
		defer (*logFileFlag).Close()
	} else if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			handleFatalErrorWithStatusCode(fmt.Errorf("problem opening log file: %v", err), ExitStatusIOError)
			return
		}
		defer logFile.Close()
		out.StartLogging(logFile)
	}

	out.Debug("using base directory %q", cfg.BaseDir)
	store, err := replays.Open(cfg.Replays())
	if err != nil {
		handleFatalErrorWithStatusCode(fmt.Errorf("could not set up replay storage: %v", err), ExitStatusIOError)
		return
	}

	switch selected {
	case initCmd.FullCommand():
		out.Info("Replay store ready at %s", store.RecordsDir())
	case listCmd.FullCommand():
		err = listReplays(store, out, *listKeysFlag)
	case getCmd.FullCommand():
		err = getReplay(store, *getKeyArg, *getFormatFlag)
	case putCmd.FullCommand():
		err = putReplay(store, out, *putArgs, *putNewFlag)
	case deleteCmd.FullCommand():
		err = store.Delete(*deleteKeyArg)
		if err == nil {
			out.Info("Deleted replay %s", console.QuoteKey(*deleteKeyArg))
		}
	case infoCmd.FullCommand():
		var info replays.RecordInfo
		info, err = store.Info(*infoKeyArg)
		if err == nil {
			fmt.Println(console.FormatInfo(info))
		}
	case shellCmd.FullCommand():
		err = runShell(store, out, cfg, *commandFlag, *scriptFileFlag)
	}
	if selected != shellCmd.FullCommand() && (len(*commandFlag) > 0 || len(*scriptFileFlag) > 0) {
		out.Warn("--command and --script-file only apply to the shell command; ignoring")
	}

	if err != nil {
		handleFatalErrorWithStatusCode(err, exitStatusFor(err))
		return
	}
}

func listReplays(store *replays.Store, out verbosity.OutputWriter, keysOnly bool) error {
	if keysOnly {
		keys, err := store.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(console.QuoteKey(k))
		}
		return nil
	}

	entries, err := store.List()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	for _, e := range entries {
		fmt.Printf("%s\t%s\n", console.QuoteKey(e.Key), console.Summarize(e.Value))
	}
	out.Debug("listed %s", misc.CountOf("replay", "replays", len(entries)))
	return nil
}

func getReplay(store *replays.Store, key string, format string) error {
	v, err := store.Get(key)
	if err != nil {
		return err
	}
	rendered, err := console.FormatValue(v, format)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func putReplay(store *replays.Store, out verbosity.OutputWriter, args []string, generateKey bool) error {
	var key, filename string
	if generateKey {
		if len(args) != 1 {
			return argumentsError{"put --new takes only FILE"}
		}
		filename = args[0]
	} else {
		if len(args) != 2 {
			return argumentsError{"put takes KEY and FILE"}
		}
		key, filename = args[0], args[1]
	}

	v, err := console.ReadValueFile(filename)
	if err != nil {
		return err
	}

	if generateKey {
		key, err = store.PutNew(v)
		if err != nil {
			return err
		}
		fmt.Println(console.QuoteKey(key))
		return nil
	}
	if err := store.Put(key, v); err != nil {
		return err
	}
	out.Info("Stored replay %s", console.QuoteKey(key))
	return nil
}

func runShell(store *replays.Store, out verbosity.OutputWriter, cfg config.Config, commands []string, scriptFiles []string) error {
	if len(commands) == 0 && len(scriptFiles) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			console.StartPrompt(store, out, console.Options{Version: currentVersion, History: cfg.HistoryEnabled()})
			return nil
		}

		// piped input is run as a script
		lines, err := console.ExecuteScript(os.Stdin, store, out)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		out.Debug("Executed %s from stdin", misc.CountOf("line", "lines", lines))
		return nil
	}

	for idx, cmdArg := range commands {
		_, err := console.ExecuteScript(strings.NewReader(cmdArg), store, out)
		if err != nil {
			return fmt.Errorf("command #%d: %w", idx+1, err)
		}
	}
	for _, filename := range scriptFiles {
		if err := runScriptFile(store, out, filename); err != nil {
			return err
		}
	}
	return nil
}

func runScriptFile(store *replays.Store, out verbosity.OutputWriter, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("problem opening %q: %w", filename, err)
	}
	defer f.Close()

	lines, err := console.ExecuteScript(f, store, out)
	if err != nil {
		return fmt.Errorf("%q: %w", filename, err)
	}
	out.Debug("Executed %s in %q", misc.CountOf("line", "lines", lines), filename)
	return nil
}

// exitStatusFor picks the exit status that best describes err.
func exitStatusFor(err error) int {
	var argErr argumentsError
	if errors.As(err, &argErr) {
		return ExitStatusArgumentsError
	}

	switch replays.KindOf(err) {
	case replays.NotFound:
		return ExitStatusNotFound
	case replays.Corrupt:
		return ExitStatusCorrupt
	case replays.IOError:
		return ExitStatusIOError
	case replays.Invalid:
		return ExitStatusInvalidValue
	}

	var scriptErr *console.ScriptError
	if errors.As(err, &scriptErr) {
		return ExitStatusScriptCommandError
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return ExitStatusIOError
	}
	return ExitStatusGenericError
}

// does proper handling of error and then exits
func handleFatalErrorWithStatusCode(err error, retCode int) {
	// don't panic, ever. Just output the generic error message
	fmt.Fprintf(os.Stderr, "%v\n", err)
	returnCode = retCode
}
