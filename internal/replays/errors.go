package replays

import (
	"errors"
	"fmt"
)

// Kind classifies a failed store operation.
type Kind int

const (
	// KindNone is the Kind of a nil error or of an error that did not come
	// from a Store.
	KindNone Kind = iota

	// NotFound means no record exists for the key (or the records directory
	// itself is missing).
	NotFound

	// Corrupt means a record file exists but does not hold exactly one
	// well-formed CBOR data item representable as a Value, or an entry in the
	// records directory is not a record file.
	Corrupt

	// IOError means the filesystem refused the operation.
	IOError

	// Invalid means the value given to Put cannot be encoded.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case NotFound:
		return "not found"
	case Corrupt:
		return "corrupt"
	case IOError:
		return "I/O error"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for use with errors.Is. An *Error matches the sentinel of its
// Kind.
var (
	ErrNotFound = errors.New("replay not found")
	ErrCorrupt  = errors.New("replay data is corrupt")
	ErrIO       = errors.New("replay storage I/O error")
	ErrInvalid  = errors.New("replay value cannot be stored")
)

// Error is returned by every failing Store operation.
type Error struct {
	Kind Kind

	// Op is the operation that failed: "list", "get", "put", "delete",
	// "info" or "init".
	Op string

	// Key is the record key involved, if any. For a failed listing it names
	// the offending directory entry.
	Key string

	// Err is the underlying cause. It may be nil.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Key != "" {
		msg += fmt.Sprintf(" %q", e.Key)
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) and friends work on an *Error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrCorrupt:
		return e.Kind == Corrupt
	case ErrIO:
		return e.Kind == IOError
	case ErrInvalid:
		return e.Kind == Invalid
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or KindNone if
// there is none.
func KindOf(err error) Kind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return KindNone
}

func newError(kind Kind, op, key string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Err: cause}
}
