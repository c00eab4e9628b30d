package replays

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"

	"dekarrin/replaykk/internal/persist"
	"dekarrin/replaykk/internal/value"
)

// KeyLength is the number of characters in a key made by NewKey.
const KeyLength = 16

// maxNewKeyAttempts bounds how many fresh keys PutNew tries before giving up.
const maxNewKeyAttempts = 8

// NewKey returns a random key of KeyLength hex characters.
func NewKey() (string, error) {
	buf := make([]byte, KeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// PutNew stores v under a newly generated key and returns that key. The record
// file is created exclusively, so an existing record is never replaced.
func (s *Store) PutNew(v value.Value) (string, error) {
	if err := value.Validate(v); err != nil {
		return "", newError(Invalid, "put", "", err)
	}

	mode := persist.BasicCreateMode.WithExclusive(true)
	for attempt := 0; attempt < maxNewKeyAttempts; attempt++ {
		key, err := NewKey()
		if err != nil {
			return "", newError(IOError, "put", "", err)
		}

		doc, err := s.docs.OpenDocument(Filename(key), mode)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return "", newError(IOError, "put", key, err)
		}
		if err := s.write("put", key, doc, v); err != nil {
			return "", err
		}
		return key, nil
	}
	return "", newError(IOError, "put", "", fmt.Errorf("no unused key found after %d attempts", maxNewKeyAttempts))
}
