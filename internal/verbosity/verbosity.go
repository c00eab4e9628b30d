// Package verbosity decides which messages replaykk prints, based on how
// verbose the user asked it to be, and copies every message to a log when one
// is configured.
//
// A Verbosity (from ParseFromFlags or ParseName) allows or suppresses each
// Level. The predefined Levels are, in order of priority, Trace, Debug, Info,
// Warn, Critical and Error; Warn shares Info's priority and Error shares
// Critical's. An OutputWriter combines a Verbosity with destinations:
//
//	out := OutputWriter{Verbosity: Normal, AutoNewline: true}
//	out.Info("stored %q", key)        // printed
//	out.Debug("wrote %d bytes", n)    // suppressed at Normal
//
// When StartLogging has been called, every message is logged whether or not
// the Verbosity lets it through to the terminal.
package verbosity

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Verbosity is how much output the user asked for. Each Verbosity lets
// through every Level at or above some threshold.
//
// The zero value is FullyVerbose.
type Verbosity int

const (
	// Silent shows nothing. It is useful with StartLogging when messages
	// should only go to the log.
	Silent Verbosity = -1

	// FullyVerbose shows every message.
	FullyVerbose Verbosity = 0

	// Quiet shows only Critical and Error messages.
	Quiet Verbosity = 1

	// Normal shows Info and Warn messages and above.
	Normal Verbosity = 2

	// Verbose adds Debug messages.
	Verbose Verbosity = 3

	// SuperVerbose adds Trace messages.
	SuperVerbose Verbosity = 4
)

// ParseFromFlags gives the Verbosity for a quiet flag and a count of verbose
// flags. Quiet wins over any number of verbose flags. Zero verbose flags is
// Normal, one is Verbose, two is SuperVerbose and more than that is
// FullyVerbose.
func ParseFromFlags(quiet bool, verboseNum int) Verbosity {
	switch {
	case quiet:
		return Quiet
	case verboseNum <= 0:
		return Normal
	case verboseNum == 1:
		return Verbose
	case verboseNum == 2:
		return SuperVerbose
	default:
		return FullyVerbose
	}
}

// ParseName gives the Verbosity with the given name. Names are matched
// without regard to case: "silent", "quiet", "normal", "verbose",
// "superverbose" and "fullyverbose" (or "all").
func ParseName(name string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent":
		return Silent, nil
	case "quiet":
		return Quiet, nil
	case "normal", "":
		return Normal, nil
	case "verbose":
		return Verbose, nil
	case "superverbose":
		return SuperVerbose, nil
	case "fullyverbose", "all":
		return FullyVerbose, nil
	}
	return Normal, fmt.Errorf("unknown verbosity %q", name)
}

func (ver Verbosity) String() string {
	switch ver {
	case Silent:
		return "silent"
	case Quiet:
		return "quiet"
	case Normal:
		return "normal"
	case Verbose:
		return "verbose"
	case SuperVerbose:
		return "superverbose"
	case FullyVerbose:
		return "fullyverbose"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(ver))
	}
}

// threshold is the lowest priority ver shows. ok is false for Silent.
func (ver Verbosity) threshold() (lowest int, ok bool) {
	switch ver {
	case Silent:
		return 0, false
	case Quiet:
		return criticalPriority, true
	case Normal:
		return infoPriority, true
	case Verbose:
		return debugPriority, true
	case SuperVerbose:
		return tracePriority, true
	default:
		// unknown verbosities act like FullyVerbose
		return 0, true
	}
}

// Allows reports whether a message at level would be shown. It is for
// output that does not go through an OutputWriter, such as a string whose
// content depends on the verbosity.
func (ver Verbosity) Allows(level Level) bool {
	lowest, ok := ver.threshold()
	return ok && level.priority >= lowest
}

// Level is the importance of a message. Warn and Error share the priorities
// of Info and Critical but keep their own names.
type Level struct {
	priority int
	name     string
}

// Priority returns the integer value of a level.
func (lv Level) Priority() int {
	return lv.priority
}

// Name returns the name of a level
func (lv Level) Name() string {
	return lv.name
}

// PrioritySeparation is the gap between the priorities of consecutive
// predefined Levels.
const PrioritySeparation = 100

const (
	tracePriority    = PrioritySeparation
	debugPriority    = 2 * PrioritySeparation
	infoPriority     = 3 * PrioritySeparation
	criticalPriority = 4 * PrioritySeparation
)

// The predefined levels, lowest first.
var (
	Trace    = Level{priority: tracePriority, name: "TRACE"}
	Debug    = Level{priority: debugPriority, name: "DEBUG"}
	Info     = Level{priority: infoPriority, name: "INFO"}
	Warn     = Level{priority: infoPriority, name: "WARN"}
	Critical = Level{priority: criticalPriority, name: "CRITICAL"}
	Error    = Level{priority: criticalPriority, name: "ERROR"}
)

// DefaultStderrFilter sends Warn and everything at Critical priority or above
// to stderr.
func DefaultStderrFilter(lv Level) bool {
	return lv == Warn || lv.priority >= criticalPriority
}

// OutputWriter prints messages the Verbosity allows and logs every message
// once StartLogging has been called. Messages bound for stderr and the log
// are prefixed with the level name; stdout messages are printed as-is.
type OutputWriter struct {
	Verbosity Verbosity

	// StderrFilter picks the messages that go to Stderr instead of Stdout.
	// Nil means DefaultStderrFilter.
	StderrFilter func(Level) bool

	// AutoNewline ends every printed message with a newline. Sprintf never
	// adds one and the log always does.
	AutoNewline bool

	// AutoCapitalize upper-cases the first letter of every printed message.
	AutoCapitalize bool

	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	logger *log.Logger
}

// StartLogging sends a copy of every message to w, whether or not the
// Verbosity lets it through. A later call replaces w.
func (ow *OutputWriter) StartLogging(w io.Writer) {
	ow.logger = log.New(w, "", log.LstdFlags)
}

// Output prints the message if the Verbosity allows lv, and logs it either
// way.
func (ow OutputWriter) Output(lv Level, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if ow.logger != nil {
		ow.logger.Print(lv.name + ": " + msg)
	}
	if !ow.Verbosity.Allows(lv) {
		return
	}

	toStderr := ow.StderrFilter
	if toStderr == nil {
		toStderr = DefaultStderrFilter
	}
	dest := ow.Stdout
	if dest == nil {
		dest = os.Stdout
	}
	if toStderr(lv) {
		msg = lv.name + ": " + msg
		dest = ow.Stderr
		if dest == nil {
			dest = os.Stderr
		}
	}

	if ow.AutoNewline && !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if ow.AutoCapitalize {
		msg = firstCharToUpper(msg)
	}
	fmt.Fprint(dest, msg)
}

// Critical outputs the message at Critical level.
func (ow OutputWriter) Critical(format string, a ...interface{}) {
	ow.Output(Critical, format, a...)
}

// Error outputs the message at Error level.
func (ow OutputWriter) Error(format string, a ...interface{}) {
	ow.Output(Error, format, a...)
}

// Info outputs the message at Info level.
func (ow OutputWriter) Info(format string, a ...interface{}) {
	ow.Output(Info, format, a...)
}

// Warn outputs the message at Warn level.
func (ow OutputWriter) Warn(format string, a ...interface{}) {
	ow.Output(Warn, format, a...)
}

// Debug outputs the message at Debug level.
func (ow OutputWriter) Debug(format string, a ...interface{}) {
	ow.Output(Debug, format, a...)
}

// Trace outputs the message at Trace level.
func (ow OutputWriter) Trace(format string, a ...interface{}) {
	ow.Output(Trace, format, a...)
}

// Sprintf formats the message if the Verbosity allows lv and returns "" if
// not. Nothing is logged.
func (ow OutputWriter) Sprintf(lv Level, format string, a ...interface{}) string {
	if !ow.Verbosity.Allows(lv) {
		return ""
	}
	return fmt.Sprintf(format, a...)
}

func firstCharToUpper(str string) string {
	r, size := utf8.DecodeRuneInString(str)
	if size == 0 || r == utf8.RuneError {
		return str
	}
	return string(unicode.ToUpper(r)) + str[size:]
}
