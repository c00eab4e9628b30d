package misc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WrapText splits text into lines no wider than width. Runs of whitespace
// become a single space. A word longer than width is broken with a trailing
// hyphen.
func WrapText(text string, width int) []string {
	if width < 2 {
		width = 2
	}

	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > 0 {
			sep := 0
			if len(cur) > 0 {
				sep = 1
			}
			if len(cur)+sep+len(w) <= width {
				if sep == 1 {
					cur = append(cur, ' ')
				}
				cur = append(cur, w...)
				w = nil
			} else if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			} else {
				lines = append(lines, string(w[:width-1])+"-")
				w = w[width-1:]
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// JustifyBlock pads the spaces of every line but the last so that each is
// width runes wide.
func JustifyBlock(lines []string, width int) []string {
	justified := make([]string, len(lines))
	for idx, line := range lines {
		if idx == len(lines)-1 {
			justified[idx] = line
		} else {
			justified[idx] = JustifyText(line, width)
		}
	}
	return justified
}

// JustifyText widens the gaps between the words of text until it is width
// runes wide, spreading extra spaces alternately from the left and right.
// Text with no gaps or that is already width or wider is returned unchanged.
func JustifyText(text string, width int) string {
	words := strings.Split(text, " ")
	gaps := len(words) - 1
	missing := width - utf8.RuneCountInString(text)
	if gaps < 1 || missing <= 0 {
		return text
	}

	extra := make([]int, gaps)
	left, right := 0, gaps-1
	for i := 0; i < missing; i++ {
		if i%2 == 0 {
			extra[left]++
			left = (left + 1) % gaps
		} else {
			extra[right]++
			right = (right - 1 + gaps) % gaps
		}
	}

	var sb strings.Builder
	for idx, word := range words {
		sb.WriteString(word)
		if idx < gaps {
			sb.WriteString(strings.Repeat(" ", 1+extra[idx]))
		}
	}
	return sb.String()
}

// Truncate shortens s to at most width runes, ending it with "..." if
// anything was cut.
func Truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// Pluralize returns singular if count is exactly 1 and plural otherwise.
func Pluralize(singular string, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountOf returns the number followed by either the singular or plural depending on the number.
func CountOf(singular string, plural string, count int) string {
	return fmt.Sprintf("%d %s", count, Pluralize(singular, plural, count))
}

// CollapseWhitespace converts every run of unicode whitespace in s to a
// single ' '.
func CollapseWhitespace(s string) string {
	var sb strings.Builder

	var inSpaceSequence bool
	for _, ch := range s {
		if unicode.IsSpace(ch) {
			inSpaceSequence = true
			continue
		}
		if inSpaceSequence {
			sb.WriteRune(' ')
			inSpaceSequence = false
		}
		sb.WriteRune(ch)
	}
	if inSpaceSequence {
		sb.WriteRune(' ')
	}
	return sb.String()
}
