package persist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fsSourceStore is a store that can open files on the filesystem in a
// particular directory; all keys are file names relative to that directory.
type fsSourceStore struct {
	dir          string
	newFilePerms os.FileMode
}

type fileDocument struct {
	f      *os.File
	closed bool
	mode   DocumentMode
	key    string

	readBuf  *bufio.Reader
	writeBuf bytes.Buffer
}

var errClosed = fmt.Errorf("document has been closed and cannot perform further operations")

// Read reads bytes from the file.
func (fDoc *fileDocument) Read(b []byte) (n int, err error) {
	if fDoc.closed {
		return 0, errClosed
	}
	if !fDoc.mode.AllowedOperations.canRead() {
		return 0, fmt.Errorf("document opened in write-only mode and cannot perform reads")
	}
	return fDoc.readBuf.Read(b)
}

// Write writes bytes to the document's buffer.
func (fDoc *fileDocument) Write(b []byte) (n int, err error) {
	if fDoc.closed {
		return 0, errClosed
	}
	if !fDoc.mode.AllowedOperations.canWrite() {
		return 0, fmt.Errorf("document opened in read-only mode and cannot perform writes")
	}
	return fDoc.writeBuf.Write(b)
}

// Close flushes everything written to the Document to the backing file and
// closes the file. The Document cannot be used after Close has been called,
// regardless of whether error is non-nil.
//
// Every call to Close() after the first will have no effect and will return
// a nil error.
func (fDoc *fileDocument) Close() error {
	if fDoc.closed {
		return nil
	}

	var flushErr error
	if fDoc.mode.AllowedOperations.canWrite() {
		flushErr = fDoc.Flush()
	}

	closeErr := fDoc.f.Close()
	fDoc.closed = true

	if closeErr != nil && flushErr != nil {
		return fmt.Errorf("%w; additionally, while closing: %v", flushErr, closeErr)
	}
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Flush writes all pending bytes to the file.
func (fDoc *fileDocument) Flush() error {
	if fDoc.closed {
		return errClosed
	}
	if fDoc.writeBuf.Len() < 1 {
		return nil
	}

	n, err := fDoc.f.Write(fDoc.writeBuf.Bytes())
	if err != nil {
		return fmt.Errorf("after writing %d bytes: %w", n, err)
	}

	fDoc.writeBuf.Reset()
	return nil
}

// Mode gets the DocumentMode that the fileDocument was opened with.
func (fDoc *fileDocument) Mode() DocumentMode {
	return fDoc.mode
}

// Key gets the name of the file relative to its store's directory.
func (fDoc *fileDocument) Key() string {
	return fDoc.key
}

// NewFilesystemStore returns a Store that reads and writes Documents as files
// in the given directory. The directory is not created; it must exist before
// any Document is opened.
//
// newDocPerm is the permission mask new Document files are created with. Only
// the permissions portion is used. If it is nil, 0644 is used.
func NewFilesystemStore(directory string, newDocPerm *os.FileMode) Store {
	fsStore := &fsSourceStore{
		dir:          directory,
		newFilePerms: 0644,
	}
	if newDocPerm != nil {
		fsStore.newFilePerms = newDocPerm.Perm()
	}
	return fsStore
}

func (fsStore *fsSourceStore) path(key string) string {
	return filepath.Join(fsStore.dir, key)
}

func (fsStore *fsSourceStore) Open(key string) (Document, error) {
	return fsStore.OpenDocument(key, BasicOpenMode)
}

func (fsStore *fsSourceStore) Create(key string) (Document, error) {
	return fsStore.OpenDocument(key, BasicCreateMode)
}

func (fsStore *fsSourceStore) OpenDocument(key string, mode DocumentMode) (Document, error) {
	f, err := os.OpenFile(fsStore.path(key), fileFlagsFromDocumentMode(mode), fsStore.newFilePerms)
	if err != nil {
		return nil, err
	}

	fDoc := &fileDocument{
		f:    f,
		mode: mode,
		key:  key,
	}
	if mode.AllowedOperations.canRead() {
		fDoc.readBuf = bufio.NewReader(f)
	}
	return fDoc, nil
}

func (fsStore *fsSourceStore) Remove(key string) error {
	return os.Remove(fsStore.path(key))
}

func (fsStore *fsSourceStore) Stat(key string) (Info, error) {
	fi, err := os.Stat(fsStore.path(key))
	if err != nil {
		return Info{}, err
	}
	return Info{
		Key:        key,
		Size:       fi.Size(),
		ModTime:    fi.ModTime(),
		IsDocument: fi.Mode().IsRegular(),
	}, nil
}

func (fsStore *fsSourceStore) List() ([]Listing, error) {
	dir, err := os.Open(fsStore.dir)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	// ReadDir on the handle keeps directory order; os.ReadDir would sort.
	entries, err := dir.ReadDir(-1)
	if err != nil && err != io.EOF {
		return nil, err
	}

	listing := make([]Listing, len(entries))
	for idx, e := range entries {
		isDoc := e.Type().IsRegular()
		if e.Type()&os.ModeSymlink != 0 {
			// follow links so a link to a regular file counts as a document
			if fi, statErr := os.Stat(fsStore.path(e.Name())); statErr == nil {
				isDoc = fi.Mode().IsRegular()
			}
		}
		listing[idx] = Listing{Key: e.Name(), IsDocument: isDoc}
	}
	return listing, nil
}

func fileFlagsFromDocumentMode(mode DocumentMode) int {
	var flags int

	switch mode.AllowedOperations {
	case ReadOnly:
		flags = os.O_RDONLY
	case WriteOnly:
		flags = os.O_WRONLY
	case ReadAndWrite:
		flags = os.O_RDWR
	default:
		panic(fmt.Sprintf("unrecognized AllowedOperations code: %v", mode.AllowedOperations))
	}

	if mode.Create {
		flags |= os.O_CREATE
	}
	if mode.Exclusive {
		flags |= os.O_EXCL
	}
	if mode.Truncate {
		flags |= os.O_TRUNC
	}
	return flags
}
