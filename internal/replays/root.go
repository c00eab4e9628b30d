// Package replays is a directory-backed key-value store of game replays. Each
// record key maps to one file <base>/records/<key>.cbor holding the CBOR
// encoding of one value.Value.
//
// The store does no locking. Two writers of the same key race and the last
// one wins; a listing may see a record that is gone by the time it is read.
package replays

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dekarrin/replaykk/internal/persist"
	"dekarrin/replaykk/internal/value"
)

const (
	// DefaultBaseDir is the base directory used when none is configured. It
	// is relative to the working directory of the process.
	DefaultBaseDir = ".quoridor"

	// RecordsDirName is the name of the records subdirectory within the base
	// directory.
	RecordsDirName = "records"

	// Extension is appended to a record key to get its file name.
	Extension = ".cbor"
)

// Config holds the locations a Store works in. They are fixed once the Store
// is created.
type Config struct {
	// BaseDir is the storage root.
	BaseDir string

	// RecordsDir is the directory record files are kept in. If empty, it is
	// RecordsDirName within BaseDir.
	RecordsDir string
}

// DefaultConfig returns a Config for DefaultBaseDir.
func DefaultConfig() Config {
	return Config{
		BaseDir:    DefaultBaseDir,
		RecordsDir: filepath.Join(DefaultBaseDir, RecordsDirName),
	}
}

// Store is a handle on one replay store. Several Stores with different
// Configs can be used at once.
type Store struct {
	baseDir    string
	recordsDir string

	docs  persist.Store
	codec persist.CBORCodec
}

// New creates a Store for the given Config. Nothing on disk is touched; call
// Initialize before the first operation on a fresh root.
func New(cfg Config) *Store {
	base := cfg.BaseDir
	if base == "" {
		base = DefaultBaseDir
	}
	records := cfg.RecordsDir
	if records == "" {
		records = filepath.Join(base, RecordsDirName)
	}

	return &Store{
		baseDir:    base,
		recordsDir: records,
		docs:       persist.NewFilesystemStore(records, nil),
		codec: persist.CBORCodec{
			EncMode: value.EncMode(),
			DecMode: value.DecMode(),
		},
	}
}

// Open creates a Store and initializes its storage root.
func Open(cfg Config) (*Store, error) {
	s := New(cfg)
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// BaseDir returns the storage root of the Store.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// RecordsDir returns the directory that record files are kept in.
func (s *Store) RecordsDir() string {
	return s.recordsDir
}

// Initialize creates the base directory and then the records directory if the
// base directory does not yet exist. If the base directory exists, nothing is
// done; a records directory missing from an existing root is not recreated.
//
// Any failure is returned as an error of Kind IOError.
func (s *Store) Initialize() error {
	fi, err := os.Stat(s.baseDir)
	if err == nil {
		if !fi.IsDir() {
			return newError(IOError, "init", "", fmt.Errorf("%s exists and is not a directory", s.baseDir))
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return newError(IOError, "init", "", err)
	}

	if err := os.Mkdir(s.baseDir, 0755); err != nil {
		return newError(IOError, "init", "", fmt.Errorf("creating base directory: %w", err))
	}
	if err := os.Mkdir(s.recordsDir, 0755); err != nil {
		return newError(IOError, "init", "", fmt.Errorf("creating records directory: %w", err))
	}
	return nil
}
