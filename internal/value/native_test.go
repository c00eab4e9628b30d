package value

import (
	"errors"
	"strings"
	"testing"
)

func Test_FromYAML(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  Value
		expectErr bool
	}{
		{name: "scalar int", input: "42", expected: NewInt(42)},
		{name: "scalar text", input: "hello", expected: NewText("hello")},
		{name: "null", input: "~", expected: NewNull()},
		{name: "sequence", input: "- W\n- 2\n- true", expected: NewArray(NewText("W"), NewInt(2), NewBool(true))},
		{
			name: "game replay",
			input: strings.Join([]string{
				"name: Alice vs Bob",
				"time: 1700000000",
				"config:",
				"  players: 2",
				"  boards: 1",
				"  cheats: 0",
				"  elapsed: 300",
				// unquoted N would be read as a YAML 1.1 boolean
				`actions: ["N", "E", "S"]`,
			}, "\n"),
			expected: gameReplayValue(),
		},
		{name: "sequence key", input: "? [a, b]\n: 1", expectErr: true},
		{name: "malformed", input: "a: [1, 2", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := FromYAML([]byte(tc.input))

			if err != nil && !tc.expectErr {
				t.Fatalf("returned an error: %v", err)
			} else if err == nil && tc.expectErr {
				t.Fatalf("expected an error but nil error was returned")
			}
			if tc.expectErr {
				return
			}

			if !Equal(tc.expected, actual) {
				t.Fatalf("expected %v but got %v", tc.expected, actual)
			}
		})
	}
}

func Test_FromYAML_keepsTopLevelOrder(t *testing.T) {
	v, err := FromYAML([]byte("zeta: 1\nalpha: 2\n"))
	if err != nil {
		t.Fatalf("returned an error: %v", err)
	}

	pairs := v.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("expected 2 entries but got %d", len(pairs))
	}
	if k, _ := pairs[0].Key.AsText(); k != "zeta" {
		t.Fatalf("expected first key %q but got %q", "zeta", k)
	}
}

func Test_ToYAML_FromYAML_roundTrip(t *testing.T) {
	input := gameReplayValue()

	data, err := ToYAML(input)
	if err != nil {
		t.Fatalf("to yaml returned an error: %v", err)
	}

	actual, err := FromYAML(data)
	if err != nil {
		t.Fatalf("from yaml returned an error: %v", err)
	}

	if !Equal(input, actual) {
		t.Fatalf("expected %v but got %v", input, actual)
	}
}

func Test_FromNative(t *testing.T) {
	testCases := []struct {
		name      string
		input     interface{}
		expected  Value
		expectErr error
	}{
		{name: "uint8", input: uint8(9), expected: NewInt(9)},
		{name: "float32", input: float32(0.5), expected: NewFloat(0.5)},
		{name: "string map", input: map[string]interface{}{"b": 1, "a": "x"}, expected: Object(map[string]Value{"a": NewText("x"), "b": NewInt(1)})},
		{name: "nested value", input: []interface{}{NewBytes([]byte{1})}, expected: NewArray(NewBytes([]byte{1}))},
		{name: "map key", input: map[interface{}]interface{}{"k": map[string]interface{}{}}, expected: Object(map[string]Value{"k": NewMap()})},
		{name: "unsupported type", input: struct{}{}, expectErr: errors.New("any")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := FromNative(tc.input)
			if err != nil && tc.expectErr == nil {
				t.Fatalf("returned an error: %v", err)
			} else if err == nil && tc.expectErr != nil {
				t.Fatalf("expected an error but nil error was returned")
			}
			if tc.expectErr != nil {
				return
			}

			if !Equal(tc.expected, actual) {
				t.Fatalf("expected %v but got %v", tc.expected, actual)
			}
		})
	}
}
