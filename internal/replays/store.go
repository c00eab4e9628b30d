package replays

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dekarrin/replaykk/internal/persist"
	"dekarrin/replaykk/internal/value"
	"golang.org/x/crypto/blake2b"
)

// Entry is a single record returned by List.
type Entry struct {
	Key   string
	Value value.Value
}

// RecordInfo describes the file backing a record.
type RecordInfo struct {
	Key     string
	Path    string
	Size    int64
	ModTime time.Time

	// Digest is the hex-encoded BLAKE2b-256 sum of the record file.
	Digest string
}

// Filename gives the name of the record file for key.
func Filename(key string) string {
	return key + Extension
}

// KeyFromFilename gives the record key for a file name. ok is false if name
// does not end in Extension.
func KeyFromFilename(name string) (key string, ok bool) {
	if !strings.HasSuffix(name, Extension) {
		return "", false
	}
	return strings.TrimSuffix(name, Extension), true
}

// List reads every record in the records directory. Entries are in the order
// the filesystem enumerates them.
//
// The listing is all-or-nothing: the first directory entry that is not a
// record file, or whose content cannot be decoded, fails the whole call with
// an error of Kind Corrupt whose Key names that entry. A record deleted while
// the listing is in progress is left out.
func (s *Store) List() ([]Entry, error) {
	listing, err := s.docs.List()
	if err != nil {
		return nil, newError(fsKind(err), "list", "", err)
	}

	entries := make([]Entry, 0, len(listing))
	for _, item := range listing {
		if !item.IsDocument {
			return nil, newError(Corrupt, "list", item.Key, fmt.Errorf("not a regular file"))
		}
		key, ok := KeyFromFilename(item.Key)
		if !ok {
			return nil, newError(Corrupt, "list", item.Key, fmt.Errorf("file name does not end in %s", Extension))
		}

		v, err := s.read("list", key)
		if err != nil {
			if KindOf(err) == NotFound {
				continue
			}
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: v})
	}
	return entries, nil
}

// Keys gives the key of every record file in the records directory, sorted.
// Contents are not read, and entries that are not record files are skipped.
func (s *Store) Keys() ([]string, error) {
	listing, err := s.docs.List()
	if err != nil {
		return nil, newError(fsKind(err), "list", "", err)
	}

	var keys []string
	for _, item := range listing {
		if !item.IsDocument {
			continue
		}
		if key, ok := KeyFromFilename(item.Key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Get reads the record stored under key.
func (s *Store) Get(key string) (value.Value, error) {
	return s.read("get", key)
}

// Put stores v under key, replacing any record already there. The value is
// checked before the file is touched, so a value that cannot be encoded
// leaves an existing record as it was.
func (s *Store) Put(key string, v value.Value) error {
	if err := value.Validate(v); err != nil {
		return newError(Invalid, "put", key, err)
	}

	doc, err := s.docs.Create(Filename(key))
	if err != nil {
		return newError(IOError, "put", key, err)
	}
	return s.write("put", key, doc, v)
}

// Delete removes the record stored under key.
func (s *Store) Delete(key string) error {
	if err := s.docs.Remove(Filename(key)); err != nil {
		return newError(fsKind(err), "delete", key, err)
	}
	return nil
}

// Info gives details of the file backing the record under key. The file
// content is hashed but not decoded.
func (s *Store) Info(key string) (RecordInfo, error) {
	name := Filename(key)
	stat, err := s.docs.Stat(name)
	if err != nil {
		return RecordInfo{}, newError(fsKind(err), "info", key, err)
	}
	if !stat.IsDocument {
		return RecordInfo{}, newError(IOError, "info", key, fmt.Errorf("not a regular file"))
	}

	doc, err := s.docs.Open(name)
	if err != nil {
		return RecordInfo{}, newError(fsKind(err), "info", key, err)
	}
	defer doc.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return RecordInfo{}, newError(IOError, "info", key, err)
	}
	if _, err := io.Copy(h, doc); err != nil {
		return RecordInfo{}, newError(IOError, "info", key, err)
	}

	return RecordInfo{
		Key:     key,
		Path:    filepath.Join(s.recordsDir, name),
		Size:    stat.Size,
		ModTime: stat.ModTime,
		Digest:  hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// read decodes the record file for key, which must hold exactly one data item.
func (s *Store) read(op, key string) (value.Value, error) {
	doc, err := s.docs.Open(Filename(key))
	if err != nil {
		return value.Value{}, newError(fsKind(err), op, key, err)
	}
	defer doc.Close()

	codec := s.codec
	if err := codec.Prepare(doc); err != nil {
		return value.Value{}, newError(IOError, op, key, err)
	}
	defer codec.Finalize()

	var v value.Value
	if err := codec.Decode(&v); err != nil {
		if err == io.EOF {
			return value.Value{}, newError(Corrupt, op, key, fmt.Errorf("file is empty"))
		}
		return value.Value{}, newError(decodeKind(err), op, key, err)
	}

	err = codec.Discard()
	if err == nil {
		return value.Value{}, newError(Corrupt, op, key, fmt.Errorf("unexpected data after record"))
	}
	if err != io.EOF {
		return value.Value{}, newError(decodeKind(err), op, key, err)
	}
	return v, nil
}

// write encodes v to doc and closes it. doc is closed on every path.
func (s *Store) write(op, key string, doc persist.Document, v value.Value) error {
	codec := s.codec
	if err := codec.Prepare(doc); err != nil {
		doc.Close()
		return newError(IOError, op, key, err)
	}
	defer codec.Finalize()

	if err := codec.Encode(v); err != nil {
		doc.Close()
		return newError(IOError, op, key, err)
	}
	if err := doc.Close(); err != nil {
		return newError(IOError, op, key, err)
	}
	return nil
}

// fsKind classifies an error from the filesystem.
func fsKind(err error) Kind {
	if errors.Is(err, fs.ErrNotExist) {
		return NotFound
	}
	return IOError
}

// decodeKind classifies an error hit while decoding a record file. Read
// failures from the file itself are IOError; anything else means the bytes
// were bad.
func decodeKind(err error) Kind {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return IOError
	}
	return Corrupt
}
