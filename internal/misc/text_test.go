package misc

import (
	"testing"
)

func Test_CollapseWhitespace(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "no spaces", input: "hello", expected: "hello"},
		{name: "single space at middle", input: "hello there", expected: "hello there"},
		{name: "single space at end", input: "hello ", expected: "hello "},
		{name: "single space at start", input: " hello", expected: " hello"},
		{name: "two spaces at middle", input: "hello  there", expected: "hello there"},
		{name: "two spaces at end", input: "hello  ", expected: "hello "},
		{name: "two spaces at start", input: "  hello", expected: " hello"},
		{name: "many spaces at middle", input: "hello         there", expected: "hello there"},
		{name: "many spaces at end", input: "hello       ", expected: "hello "},
		{name: "many spaces at start", input: "              hello", expected: " hello"},
		{name: "many mixed latin-1 whitespace chars at middle", input: "hello \t\v\r\nthere", expected: "hello there"},
		{name: "many mixed extended whitespace chars at middle", input: "hello\u3000\u205f\u202fthere", expected: "hello there"},
		{name: "many mixed latin-1 and extended whitespace chars at middle", input: "hello\u2003\u2007 \nthere", expected: "hello there"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {

			actual := CollapseWhitespace(tc.input)

			if actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}

func Test_WrapText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		expected []string
	}{
		{name: "empty", input: "", width: 10, expected: nil},
		{name: "fits", input: "list replays", width: 20, expected: []string{"list replays"}},
		{name: "two lines", input: "the quick brown fox", width: 10, expected: []string{"the quick", "brown fox"}},
		{name: "exact width", input: "abcd efgh", width: 4, expected: []string{"abcd", "efgh"}},
		{name: "whitespace collapsed", input: "  a \t b\n c ", width: 20, expected: []string{"a b c"}},
		{name: "long word broken", input: "abcdefghij", width: 4, expected: []string{"abc-", "def-", "ghi-", "j"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := WrapText(tc.input, tc.width)
			if len(actual) != len(tc.expected) {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
			for idx := range tc.expected {
				if actual[idx] != tc.expected[idx] {
					t.Fatalf("expected %q but got %q", tc.expected, actual)
				}
			}
		})
	}
}

func Test_JustifyText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "no gaps", input: "word", width: 10, expected: "word"},
		{name: "already wide", input: "a b c", width: 3, expected: "a b c"},
		{name: "one gap", input: "a b", width: 5, expected: "a   b"},
		{name: "two gaps even spread", input: "a b c", width: 7, expected: "a  b  c"},
		{name: "two gaps odd spread", input: "a b c", width: 6, expected: "a  b c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := JustifyText(tc.input, tc.width)
			if actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}

func Test_JustifyBlock(t *testing.T) {
	actual := JustifyBlock([]string{"a b", "c d"}, 5)
	expected := []string{"a   b", "c d"}
	for idx := range expected {
		if actual[idx] != expected[idx] {
			t.Fatalf("expected %q but got %q", expected, actual)
		}
	}
}

func Test_Truncate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "short", input: "Alice", width: 10, expected: "Alice"},
		{name: "cut", input: "Alice vs Bob", width: 8, expected: "Alice..."},
		{name: "tiny width", input: "Alice", width: 2, expected: "Al"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Truncate(tc.input, tc.width)
			if actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}

func Test_CountOf(t *testing.T) {
	testCases := []struct {
		count    int
		expected string
	}{
		{0, "0 replays"},
		{1, "1 replay"},
		{2, "2 replays"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			actual := CountOf("replay", "replays", tc.count)
			if actual != tc.expected {
				t.Fatalf("expected %q but got %q", tc.expected, actual)
			}
		})
	}
}
