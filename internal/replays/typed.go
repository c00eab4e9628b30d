package replays

import (
	"fmt"

	"dekarrin/replaykk/internal/value"
)

// TimerElapsed says what happens to a player whose turn timer runs out.
type TimerElapsed int32

const (
	// Lose means the player surrenders.
	Lose TimerElapsed = iota

	// Board gives the opponent one more board.
	Board

	// Cheat gives the opponent one more cheat.
	Cheat
)

func (te TimerElapsed) String() string {
	switch te {
	case Lose:
		return "surrender"
	case Board:
		return "+1 board (opponent)"
	case Cheat:
		return "+1 cheat (opponent)"
	default:
		return fmt.Sprintf("TimerElapsed(%d)", int32(te))
	}
}

// ReplayConfig is the game setup a replay was recorded with.
type ReplayConfig struct {
	Players int32        `cbor:"players"`
	Boards  int32        `cbor:"boards"`
	Cheats  int32        `cbor:"cheats"`
	Elapsed TimerElapsed `cbor:"elapsed"`
}

// GameReplay is the typed form of a replay record as the game writes it.
// Time is in seconds since the Unix epoch and each action is one encoded
// move.
type GameReplay struct {
	Name    string       `cbor:"name"`
	Time    uint64       `cbor:"time"`
	Config  ReplayConfig `cbor:"config"`
	Actions []string     `cbor:"actions"`
}

// Value converts the replay to its dynamic form.
func (gr GameReplay) Value() (value.Value, error) {
	return value.FromStruct(gr)
}

// ReplayFromValue reads a GameReplay out of a dynamic record. Fields missing
// from v are left at their zero value and fields GameReplay does not have are
// ignored.
func ReplayFromValue(v value.Value) (GameReplay, error) {
	var gr GameReplay
	if err := v.DecodeInto(&gr); err != nil {
		return GameReplay{}, err
	}
	return gr, nil
}

// GetReplay reads the record under key as a GameReplay. A record that does not
// have the shape of a GameReplay gives an error of Kind Corrupt.
func GetReplay(s *Store, key string) (GameReplay, error) {
	v, err := s.Get(key)
	if err != nil {
		return GameReplay{}, err
	}
	gr, err := ReplayFromValue(v)
	if err != nil {
		return GameReplay{}, newError(Corrupt, "get", key, err)
	}
	return gr, nil
}

// PutReplay stores gr under key.
func PutReplay(s *Store, key string, gr GameReplay) error {
	v, err := gr.Value()
	if err != nil {
		return newError(Invalid, "put", key, err)
	}
	return s.Put(key, v)
}
