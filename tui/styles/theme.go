package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a Base16 palette. Base00 through Base07 run from background to
// foreground; Base08 through Base0F are the accents (red, orange, yellow,
// green, cyan, blue, magenta, brown).
type Theme struct {
	Name string

	Base00, Base01, Base02, Base03 lipgloss.Color
	Base04, Base05, Base06, Base07 lipgloss.Color
	Base08, Base09, Base0A, Base0B lipgloss.Color
	Base0C, Base0D, Base0E, Base0F lipgloss.Color
}

// FallbackTheme is the slug used when a configured theme is unknown.
const FallbackTheme = "solarized-dark"

var slugs = func() []string {
	out := make([]string, 0, len(Themes))
	for slug := range Themes {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}()

// Names returns every theme slug, sorted.
func Names() []string {
	return append([]string(nil), slugs...)
}

// Lookup returns the theme registered under slug.
func Lookup(slug string) (Theme, bool) {
	t, ok := Themes[slug]
	return t, ok
}

// Resolve returns the theme for slug, falling back to FallbackTheme.
func Resolve(slug string) Theme {
	if t, ok := Themes[slug]; ok {
		return t
	}
	return Themes[FallbackTheme]
}

// Position returns slug's zero-based index among Names, or -1.
func Position(slug string) int {
	i := sort.SearchStrings(slugs, slug)
	if i < len(slugs) && slugs[i] == slug {
		return i
	}
	return -1
}

// Cycle returns the slug delta places from slug, wrapping at either end. An
// unknown slug is treated as sitting just before the first theme.
func Cycle(slug string, delta int) string {
	n := len(slugs)
	i := Position(slug)
	if i < 0 {
		i = -1
		if delta < 0 {
			i = 0
		}
	}
	return slugs[((i+delta)%n+n)%n]
}
