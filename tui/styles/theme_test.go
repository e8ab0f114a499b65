package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolve(t *testing.T) {
	if got := Resolve("nord").Name; got != "Nord" {
		t.Errorf("Resolve(nord).Name = %q", got)
	}
	if got := Resolve("no-such-theme").Name; got != "Solarized Dark" {
		t.Errorf("unknown slug resolved to %q, want the fallback", got)
	}
	if _, ok := Lookup("no-such-theme"); ok {
		t.Error("Lookup found a missing theme")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(Themes) || len(names) < 20 {
		t.Fatalf("Names() has %d entries for %d themes", len(names), len(Themes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	names[0] = "mutated"
	if Names()[0] == "mutated" {
		t.Error("Names() exposes internal state")
	}
}

func TestCycle(t *testing.T) {
	names := Names()
	first, last := names[0], names[len(names)-1]
	tests := []struct {
		slug  string
		delta int
		want  string
	}{
		{first, 1, names[1]},
		{names[1], -1, first},
		{last, 1, first},
		{first, -1, last},
		{"no-such-theme", 1, first},
		{"no-such-theme", -1, last},
		{first, len(names), first},
	}
	for _, tt := range tests {
		if got := Cycle(tt.slug, tt.delta); got != tt.want {
			t.Errorf("Cycle(%q, %d) = %q, want %q", tt.slug, tt.delta, got, tt.want)
		}
	}
	if Position("nord") < 0 || Position("nope") != -1 {
		t.Error("Position disagrees with Names")
	}
}

func TestThemesComplete(t *testing.T) {
	for slug, th := range Themes {
		if th.Name == "" {
			t.Errorf("%s: empty name", slug)
		}
		for i, c := range []lipgloss.Color{th.Base00, th.Base05, th.Base08, th.Base0B, th.Base0D} {
			if len(c) != 7 || c[0] != '#' {
				t.Errorf("%s: color %d = %q, want #rrggbb", slug, i, c)
			}
		}
	}
}
