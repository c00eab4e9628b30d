package replays

import (
	"path/filepath"
	"testing"

	"dekarrin/replaykk/internal/testutil"
)

func Test_Store_Initialize(t *testing.T) {
	t.Run("creates base then records", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), ".quoridor")
		s := New(Config{BaseDir: base})

		if err := s.Initialize(); err != nil {
			t.Fatalf("initialize: %v", err)
		}
		if !testutil.IsDir(base) {
			t.Fatalf("base directory was not created")
		}
		if !testutil.IsDir(filepath.Join(base, RecordsDirName)) {
			t.Fatalf("records directory was not created")
		}

		entries, err := s.List()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected empty listing but got %v", entries)
		}
	})

	t.Run("second call does nothing", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), ".quoridor")
		s := New(Config{BaseDir: base})

		if err := s.Initialize(); err != nil {
			t.Fatalf("first initialize: %v", err)
		}
		testutil.WriteFile(t, s.RecordsDir(), "keep.cbor", []byte{0xf6})
		if err := s.Initialize(); err != nil {
			t.Fatalf("second initialize: %v", err)
		}
		if !testutil.Exists(filepath.Join(s.RecordsDir(), "keep.cbor")) {
			t.Fatalf("record was removed by second initialize")
		}
	})

	t.Run("existing base is not repaired", func(t *testing.T) {
		dir := t.TempDir()
		base := testutil.Mkdir(t, dir, "partial")
		s := New(Config{BaseDir: base})

		if err := s.Initialize(); err != nil {
			t.Fatalf("initialize: %v", err)
		}
		if testutil.Exists(filepath.Join(base, RecordsDirName)) {
			t.Fatalf("records directory was created under an existing base")
		}

		_, err := s.List()
		assertKind(t, err, NotFound)
	})

	t.Run("base is a file", func(t *testing.T) {
		dir := t.TempDir()
		base := testutil.WriteFile(t, dir, "base", []byte("x"))
		s := New(Config{BaseDir: base})

		err := s.Initialize()
		assertKind(t, err, IOError)
	})

	t.Run("parent missing", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "no", "such", "parent")
		_, err := Open(Config{BaseDir: base})
		assertKind(t, err, IOError)
	})
}

func Test_New_defaults(t *testing.T) {
	testCases := []struct {
		name            string
		cfg             Config
		expectBase      string
		expectRecordDir string
	}{
		{
			name:            "zero config",
			cfg:             Config{},
			expectBase:      DefaultBaseDir,
			expectRecordDir: filepath.Join(DefaultBaseDir, RecordsDirName),
		},
		{
			name:            "default config",
			cfg:             DefaultConfig(),
			expectBase:      DefaultBaseDir,
			expectRecordDir: filepath.Join(DefaultBaseDir, RecordsDirName),
		},
		{
			name:            "base only",
			cfg:             Config{BaseDir: "somewhere"},
			expectBase:      "somewhere",
			expectRecordDir: filepath.Join("somewhere", RecordsDirName),
		},
		{
			name:            "both given",
			cfg:             Config{BaseDir: "a", RecordsDir: "b"},
			expectBase:      "a",
			expectRecordDir: "b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.cfg)
			if s.BaseDir() != tc.expectBase {
				t.Fatalf("expected base %q but got %q", tc.expectBase, s.BaseDir())
			}
			if s.RecordsDir() != tc.expectRecordDir {
				t.Fatalf("expected records dir %q but got %q", tc.expectRecordDir, s.RecordsDir())
			}
		})
	}
}

func Test_Stores_doNotCollide(t *testing.T) {
	s1 := newTestStore(t)
	s2 := newTestStore(t)

	if err := s1.Put("shared", gameReplayValue("one")); err != nil {
		t.Fatalf("put: %v", err)
	}

	_, err := s2.Get("shared")
	assertKind(t, err, NotFound)
}
