package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"dekarrin/replaykk/internal/console"
	"dekarrin/replaykk/internal/replays"
)

func Test_exitStatusFor(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &replays.Error{Kind: replays.NotFound, Op: "get"}, ExitStatusNotFound},
		{"corrupt", &replays.Error{Kind: replays.Corrupt, Op: "get"}, ExitStatusCorrupt},
		{"io", &replays.Error{Kind: replays.IOError, Op: "put"}, ExitStatusIOError},
		{"invalid", &replays.Error{Kind: replays.Invalid, Op: "put"}, ExitStatusInvalidValue},
		{"arguments", argumentsError{"bad"}, ExitStatusArgumentsError},
		{"script with store error", fmt.Errorf("command #1: %w", &console.ScriptError{Line: 1, Err: &replays.Error{Kind: replays.NotFound}}), ExitStatusNotFound},
		{"script with command error", &console.ScriptError{Line: 3, Err: errors.New("unknown command")}, ExitStatusScriptCommandError},
		{"path error", &os.PathError{Op: "open", Path: "x", Err: os.ErrPermission}, ExitStatusIOError},
		{"anything else", errors.New("boom"), ExitStatusGenericError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if actual := exitStatusFor(tc.err); actual != tc.expected {
				t.Fatalf("expected %d but got %d", tc.expected, actual)
			}
		})
	}
}
