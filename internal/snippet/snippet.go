// Package snippet cuts quote text into short display fragments.
package snippet

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultClauseMax = 80
	Ellipsis         = "..."
)

// LeadingClause returns text up to, not including, the first sentence
// terminator ('.', '!' or '?'). Text without a terminator is returned whole.
func LeadingClause(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i]
	}
	return text
}

// Truncate shortens s to at most max runes, replacing the tail with an
// ellipsis when it has to cut. Lengths are code points, never UTF-16 units,
// so a cut cannot split a surrogate pair.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	keep := max - len(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return string(runes[:keep]) + Ellipsis
}

// Clause is LeadingClause followed by Truncate to DefaultClauseMax.
func Clause(text string) string {
	return Truncate(LeadingClause(text), DefaultClauseMax)
}

// Wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width get a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var current []string
	curLen := 0

	for _, w := range words {
		wLen := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wLen > width {
			lines = append(lines, strings.Join(current, " "))
			current = nil
			curLen = 0
		}
		if curLen > 0 {
			curLen++
		}
		current = append(current, w)
		curLen += wLen
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
