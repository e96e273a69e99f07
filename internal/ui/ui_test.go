package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetThemeFallsBackToClassic(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("NEON")
	if Current().Name != "neon" {
		t.Errorf("theme = %q, want neon", Current().Name)
	}
	SetTheme("does-not-exist")
	if Current().Name != "classic" {
		t.Errorf("theme = %q, want classic", Current().Name)
	}
}

func TestMonoPanel(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	var buf bytes.Buffer
	Panel(&buf, []string{"Tasks", "a"})
	out := buf.String()
	if !strings.HasPrefix(out, "+") || !strings.Contains(out, "| Tasks") {
		t.Errorf("unexpected mono panel:\n%s", out)
	}
}

func TestStatusLines(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	if got, want := buf.String(), "ok added\nerror: boom\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ÄÖÜäöüßéèê", 5, "ÄÖ..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
