package config

import (
	"path/filepath"
	"testing"

	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/testutil"
	"dekarrin/replaykk/internal/verbosity"
)

func Test_Default(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is not valid: %v", err)
	}
	if cfg.BaseDir != replays.DefaultBaseDir {
		t.Fatalf("expected base dir %q but got %q", replays.DefaultBaseDir, cfg.BaseDir)
	}
	if cfg.OutputVerbosity() != verbosity.Normal {
		t.Fatalf("expected normal verbosity but got %v", cfg.OutputVerbosity())
	}
	if !cfg.HistoryEnabled() {
		t.Fatalf("expected history to be on by default")
	}
}

func Test_Parse(t *testing.T) {
	off := false

	testCases := []struct {
		name      string
		input     string
		expected  Config
		expectErr bool
	}{
		{
			name:     "empty gives defaults",
			input:    "",
			expected: Default(),
		},
		{
			name:  "all fields",
			input: "base_dir: /data/q\nrecords_dir: /data/r\nlog_file: /tmp/l.log\nverbosity: verbose\nhistory: false\n",
			expected: Config{
				BaseDir:    "/data/q",
				RecordsDir: "/data/r",
				LogFile:    "/tmp/l.log",
				Verbosity:  "verbose",
				History:    &off,
			},
		},
		{
			name:  "partial keeps other defaults",
			input: "verbosity: quiet\n",
			expected: Config{
				BaseDir:   replays.DefaultBaseDir,
				Verbosity: "quiet",
			},
		},
		{
			name:      "unknown key",
			input:     "base_dir: x\ncolour: red\n",
			expectErr: true,
		},
		{
			name:      "bad verbosity",
			input:     "verbosity: shouty\n",
			expectErr: true,
		},
		{
			name:      "empty base dir",
			input:     "base_dir: ''\n",
			expectErr: true,
		},
		{
			name:      "not yaml",
			input:     "base_dir: [unclosed\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected an error but got %+v", actual)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertConfigEqual(t, tc.expected, actual)
		})
	}
}

func Test_Load_relativePaths(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "replaykk.yml", []byte("base_dir: store\nlog_file: /abs/out.log\n"))

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseDir != filepath.Join(dir, "store") {
		t.Fatalf("expected base dir relative to config file but got %q", cfg.BaseDir)
	}
	if cfg.LogFile != "/abs/out.log" {
		t.Fatalf("expected absolute log path to be kept but got %q", cfg.LogFile)
	}

	rc := cfg.Replays()
	if rc.BaseDir != cfg.BaseDir || rc.RecordsDir != "" {
		t.Fatalf("unexpected store config: %+v", rc)
	}
}

func Test_Load_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected an error loading a missing file")
	}
}

func Test_Config_YAML_roundTrip(t *testing.T) {
	on := true
	cfg := Config{BaseDir: "/q", LogFile: "l", Verbosity: "superverbose", History: &on}

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	actual, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	assertConfigEqual(t, cfg, actual)
}

func assertConfigEqual(t *testing.T, expected, actual Config) {
	t.Helper()
	if expected.BaseDir != actual.BaseDir ||
		expected.RecordsDir != actual.RecordsDir ||
		expected.LogFile != actual.LogFile ||
		expected.Verbosity != actual.Verbosity ||
		expected.HistoryEnabled() != actual.HistoryEnabled() {
		t.Fatalf("expected %+v but got %+v", expected, actual)
	}
}

func Test_Config_WithBaseDir(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "replaykk.yml", []byte("base_dir: store\nrecords_dir: elsewhere/records\nverbosity: quiet\n"))

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	override := filepath.Join(dir, "other")
	cfg = cfg.WithBaseDir(override)

	store := replays.New(cfg.Replays())
	if store.BaseDir() != override {
		t.Fatalf("expected base dir %q but got %q", override, store.BaseDir())
	}
	if expected := filepath.Join(override, replays.RecordsDirName); store.RecordsDir() != expected {
		t.Fatalf("expected records dir %q but got %q", expected, store.RecordsDir())
	}
	if cfg.OutputVerbosity() != verbosity.Quiet {
		t.Fatalf("other settings should be kept but verbosity is %v", cfg.OutputVerbosity())
	}
}
