package snippet

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLeadingClause(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"period", "Ship it. Then learn.", "Ship it"},
		{"question first", "Why wait? Because.", "Why wait"},
		{"exclamation", "Go fast! Really", "Go fast"},
		{"no terminator", "no end in sight", "no end in sight"},
		{"leading terminator", ".hidden", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadingClause(tt.in); got != tt.want {
				t.Errorf("LeadingClause(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	short := "short enough"
	if got := Truncate(short, 80); got != short {
		t.Errorf("expected unchanged, got %q", got)
	}

	exact := strings.Repeat("a", 80)
	if got := Truncate(exact, 80); got != exact {
		t.Error("80 runes should not be truncated")
	}

	long := strings.Repeat("b", 81)
	got := Truncate(long, 80)
	if utf8.RuneCountInString(got) != 80 {
		t.Errorf("expected 80 runes, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, Ellipsis) || !strings.HasPrefix(got, strings.Repeat("b", 77)) {
		t.Errorf("unexpected truncation %q", got)
	}

	multi := strings.Repeat("é", 90)
	if got := Truncate(multi, 80); utf8.RuneCountInString(got) != 80 || !utf8.ValidString(got) {
		t.Errorf("multi-byte truncation broke runes: %q", got)
	}
}

func TestClause(t *testing.T) {
	text := strings.Repeat("word ", 30) + ". tail"
	got := Clause(text)
	if utf8.RuneCountInString(got) != DefaultClauseMax {
		t.Errorf("expected %d runes, got %d", DefaultClauseMax, utf8.RuneCountInString(got))
	}
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, l := range lines {
		if utf8.RuneCountInString(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrap lost words: %v", lines)
	}
	if Wrap("   ", 10) != nil {
		t.Error("expected nil for blank input")
	}
	if got := Wrap("supercalifragilistic word", 5); got[0] != "supercalifragilistic" {
		t.Errorf("long word should stand alone, got %v", got)
	}
}
