package verbosity

import (
	"bytes"
	"strings"
	"testing"
)

func Test_ParseFromFlags(t *testing.T) {
	testCases := []struct {
		name       string
		quiet      bool
		verboseNum int
		expected   Verbosity
	}{
		{"nothing set", false, 0, Normal},
		{"one -v", false, 1, Verbose},
		{"two -v", false, 2, SuperVerbose},
		{"many -v", false, 5, FullyVerbose},
		{"quiet wins", true, 3, Quiet},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := ParseFromFlags(tc.quiet, tc.verboseNum)
			if actual != tc.expected {
				t.Fatalf("expected %v but got %v", tc.expected, actual)
			}
		})
	}
}

func Test_ParseName(t *testing.T) {
	testCases := []struct {
		input     string
		expected  Verbosity
		expectErr bool
	}{
		{"", Normal, false},
		{"quiet", Quiet, false},
		{"  Verbose ", Verbose, false},
		{"SUPERVERBOSE", SuperVerbose, false},
		{"all", FullyVerbose, false},
		{"silent", Silent, false},
		{"loud", Normal, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := ParseName(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != tc.expected {
				t.Fatalf("expected %v but got %v", tc.expected, actual)
			}
			if roundTrip, _ := ParseName(actual.String()); roundTrip != actual {
				t.Fatalf("String() of %v does not parse back", actual)
			}
		})
	}
}

func Test_Verbosity_Allows(t *testing.T) {
	testCases := []struct {
		name      string
		verbosity Verbosity
		level     Level
		expected  bool
	}{
		{"normal allows info", Normal, Info, true},
		{"normal allows warn", Normal, Warn, true},
		{"normal blocks debug", Normal, Debug, false},
		{"quiet blocks info", Quiet, Info, false},
		{"quiet allows error", Quiet, Error, true},
		{"verbose allows debug", Verbose, Debug, true},
		{"verbose blocks trace", Verbose, Trace, false},
		{"silent blocks critical", Silent, Critical, false},
		{"fully verbose allows trace", FullyVerbose, Trace, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.verbosity.Allows(tc.level)
			if actual != tc.expected {
				t.Fatalf("expected %v but got %v", tc.expected, actual)
			}
		})
	}
}

func Test_OutputWriter_destinations(t *testing.T) {
	var stdout, stderr, logBuf bytes.Buffer
	out := OutputWriter{
		Verbosity:   Normal,
		Stdout:      &stdout,
		Stderr:      &stderr,
		AutoNewline: true,
	}
	out.StartLogging(&logBuf)

	out.Info("stored %q", "game1")
	out.Error("replay %q not found", "game2")
	out.Debug("hidden")

	if stdout.String() != "stored \"game1\"\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if stderr.String() != "ERROR: replay \"game2\" not found\n" {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}

	logged := logBuf.String()
	for _, expected := range []string{"INFO: stored", "ERROR: replay", "DEBUG: hidden"} {
		if !strings.Contains(logged, expected) {
			t.Fatalf("log is missing %q: %q", expected, logged)
		}
	}
}

func Test_firstCharToUpper(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a", "A"},
		{"replay saved", "Replay saved"},
		{"éclair", "Éclair"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			actual := firstCharToUpper(tc.input)
			if actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}
