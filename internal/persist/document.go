package persist

import (
	"fmt"
	"io"
)

// Document is one named document in a Store, open for reading or writing.
// Written bytes reach the store on Flush or Close.
type Document interface {
	io.ReadWriteCloser

	Flush() error

	// Mode is the DocumentMode the Document was opened with.
	Mode() DocumentMode

	// Key names the Document within its Store.
	Key() string
}

// AllowedOperations limits what can be done with an open Document.
type AllowedOperations int

const (
	ReadAndWrite AllowedOperations = iota
	ReadOnly
	WriteOnly
)

func (ao AllowedOperations) String() string {
	switch ao {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadAndWrite:
		return "read-write"
	default:
		return fmt.Sprintf("AllowedOperations(%d)", int(ao))
	}
}

func (ao AllowedOperations) canRead() bool {
	return ao != WriteOnly
}

func (ao AllowedOperations) canWrite() bool {
	return ao != ReadOnly
}

// DocumentMode says how a Document is opened.
type DocumentMode struct {
	AllowedOperations AllowedOperations

	// Create makes the Document if it does not exist.
	Create bool

	// Exclusive, with Create, fails with fs.ErrExist if the Document already
	// exists.
	Exclusive bool

	// Truncate empties an existing Document when it is opened.
	Truncate bool
}

// BasicOpenMode is read-only; Store.Open uses it.
var BasicOpenMode = DocumentMode{AllowedOperations: ReadOnly}

// BasicCreateMode is write-only, creating or truncating; Store.Create uses
// it.
var BasicCreateMode = DocumentMode{AllowedOperations: WriteOnly, Create: true, Truncate: true}

// WithExclusive returns a copy of dm with Exclusive set to b.
func (dm DocumentMode) WithExclusive(b bool) DocumentMode {
	dm.Exclusive = b
	return dm
}
