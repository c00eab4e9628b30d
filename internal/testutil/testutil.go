package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// various utility functions for testing against directories on disk

// WriteFile writes data to name in dir, failing the test on error.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := ioutil.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("could not write test file %s: %v", p, err)
	}
	return p
}

// ReadFile reads name in dir, failing the test on error.
func ReadFile(t *testing.T, dir, name string) []byte {
	t.Helper()
	p := filepath.Join(dir, name)
	data, err := ioutil.ReadFile(p)
	if err != nil {
		t.Fatalf("could not read test file %s: %v", p, err)
	}
	return data
}

// Mkdir creates name in dir, failing the test on error.
func Mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.Mkdir(p, 0755); err != nil {
		t.Fatalf("could not create test directory %s: %v", p, err)
	}
	return p
}

// IsDir reports whether p exists and is a directory.
func IsDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// Exists reports whether anything exists at p.
func Exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// DirNames gives the sorted names of the entries in dir, failing the test on
// error.
func DirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatalf("could not read test directory %s: %v", dir, err)
	}
	names := make([]string, len(entries))
	for idx := range entries {
		names[idx] = entries[idx].Name()
	}
	sort.Strings(names)
	return names
}
