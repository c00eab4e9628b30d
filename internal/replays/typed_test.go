package replays

import (
	"reflect"
	"testing"

	"dekarrin/replaykk/internal/value"
)

func Test_GameReplay_roundTrip(t *testing.T) {
	s := newTestStore(t)
	expected := GameReplay{
		Name: "Alice vs Bob",
		Time: 1700000000,
		Config: ReplayConfig{
			Players: 2,
			Boards:  1,
			Cheats:  0,
			Elapsed: Board,
		},
		Actions: []string{"N", "E", "S"},
	}

	if err := PutReplay(s, "game1", expected); err != nil {
		t.Fatalf("put: %v", err)
	}
	actual, err := GetReplay(s, "game1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %+v but got %+v", expected, actual)
	}

	// the dynamic view sees the same record
	v, err := s.Get("game1")
	if err != nil {
		t.Fatalf("dynamic get: %v", err)
	}
	name, ok := v.Field("name")
	if !ok {
		t.Fatalf("record has no name field: %v", v)
	}
	if text, _ := name.AsText(); text != "Alice vs Bob" {
		t.Fatalf("expected name %q but got %v", "Alice vs Bob", name)
	}
}

func Test_ReplayFromValue(t *testing.T) {
	testCases := []struct {
		name      string
		v         value.Value
		expected  GameReplay
		expectErr bool
	}{
		{
			name: "full record",
			v:    gameReplayValue("Alice vs Bob"),
			expected: GameReplay{
				Name:    "Alice vs Bob",
				Time:    1700000000,
				Config:  ReplayConfig{Players: 2, Boards: 1, Cheats: 0, Elapsed: 300},
				Actions: []string{"N", "E", "S"},
			},
		},
		{
			name: "missing fields are zero",
			v:    value.Object(map[string]value.Value{"name": value.NewText("partial")}),
			expected: GameReplay{
				Name: "partial",
			},
		},
		{
			name: "unknown fields are ignored",
			v: value.Object(map[string]value.Value{
				"name":    value.NewText("extra"),
				"version": value.NewInt(2),
			}),
			expected: GameReplay{
				Name: "extra",
			},
		},
		{
			name:      "wrong field type",
			v:         value.Object(map[string]value.Value{"time": value.NewText("yesterday")}),
			expectErr: true,
		},
		{
			name:      "not a map",
			v:         value.NewArray(value.NewInt(1)),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ReplayFromValue(tc.v)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected an error but got %+v", actual)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.expected, actual) {
				t.Fatalf("expected %+v but got %+v", tc.expected, actual)
			}
		})
	}
}

func Test_GetReplay_wrongShape(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put("odd", value.NewText("not a replay")); err != nil {
		t.Fatalf("put: %v", err)
	}

	_, err := GetReplay(s, "odd")
	assertKind(t, err, Corrupt)

	_, err = GetReplay(s, "absent")
	assertKind(t, err, NotFound)
}

func Test_TimerElapsed_String(t *testing.T) {
	testCases := []struct {
		te       TimerElapsed
		expected string
	}{
		{Lose, "surrender"},
		{Board, "+1 board (opponent)"},
		{Cheat, "+1 cheat (opponent)"},
		{TimerElapsed(9), "TimerElapsed(9)"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if actual := tc.te.String(); actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}
