package engine

import (
	"strings"
	"testing"
)

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer() error = %v", err)
	}

	if w := m.Width("", 16); w != 0 {
		t.Errorf("Width(\"\") = %v, want 0", w)
	}
	short, long := m.Width("Www", 16), m.Width("Wwwwww", 16)
	if short <= 0 || long <= short {
		t.Errorf("Width() not increasing: %v then %v", short, long)
	}
	if big := m.Width("Www", 32); big <= short {
		t.Errorf("Width at 32 = %v, want more than %v", big, short)
	}
	if w := m.Width("Www", 0); w != 0 {
		t.Errorf("Width at size 0 = %v, want 0", w)
	}

	line := m.LineHeight(16)
	if line <= 0 {
		t.Fatalf("LineHeight() = %v", line)
	}

	type tc struct {
		text  string
		width float64
		lines int
	}

	words := strings.Repeat("word ", 20)
	tests := map[string]tc{
		"empty is one line":        {text: "", width: 100, lines: 1},
		"fits on one line":         {text: "hi", width: 1000, lines: 1},
		"explicit newline":         {text: "a\nb", width: 1000, lines: 2},
		"long word keeps its line": {text: strings.Repeat("W", 40), width: 10, lines: 1},
		"one word per line":        {text: words, width: m.Width("word", 16) + 1, lines: 20},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := m.WrappedHeight(tt.text, 16, tt.width)
			if want := float64(tt.lines) * line; !approx(got, want) {
				t.Errorf("WrappedHeight() = %v, want %v (%d lines)", got, want, tt.lines)
			}
		})
	}
}
