// Package persist provides a file-like API for all persistence. Everything is
// represented as "documents", each identified by a key (for the filesystem
// store, a file name relative to the store's directory).
//
// Users of the package create an implementor of Store (usually via a
// NewXStore() function) and use it to get Documents that can be read and
// written. Writes are buffered and only reach the backing file when the
// Document is closed, so Close must be called and its error checked.
//
// Documents hold raw bytes; a Codec layered over a Document gives structured
// encoding and decoding of values.
//
// Concurrent usage is not safe. Two callers writing the same key race, and
// the last one to close wins.
package persist

import "time"

// Store for all persistence documents. Each document has a key associated
// with it, usually a name or path-like string referring to the document.
type Store interface {

	// Open opens a Document for reading. If successful, methods on the
	// returned Document can be used for reading; it will have its mode set to
	// BasicOpenMode, which specifies read-only.
	Open(key string) (Document, error)

	// OpenDocument is the generalized open call; most users will use Open or
	// Create instead. If the Document does not exist, and mode.Create is set
	// to true, the Document is created.
	OpenDocument(key string, mode DocumentMode) (Document, error)

	// Create creates or truncates a Document. If the Document already exists,
	// it is truncated. If the Document does not already exist, it is created.
	Create(key string) (Document, error)

	// Remove deletes the Document with the given key.
	Remove(key string) error

	// Stat gives information on the Document with the given key without
	// opening it.
	Stat(key string) (Info, error)

	// List gives every entry at the top level of the store, in whatever order
	// the backing store enumerates them.
	List() ([]Listing, error)
}

// Listing is a single entry returned by Store.List.
type Listing struct {
	// Key is the key the entry would be opened with.
	Key string

	// IsDocument is false for entries that exist in the store but cannot be
	// opened as a Document, such as a subdirectory.
	IsDocument bool
}

// Info describes a stored Document.
type Info struct {
	Key        string
	Size       int64
	ModTime    time.Time
	IsDocument bool
}
