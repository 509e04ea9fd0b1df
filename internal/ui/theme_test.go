package ui

import "testing"

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	t.Parallel()

	if got := GetTheme("NoSuchTheme"); got.Name != "Nightfox" {
		t.Fatalf("GetTheme(unknown) = %q, want Nightfox", got.Name)
	}
	if got := GetTheme("Kanagawa"); got.Name != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa) = %q", got.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Fatalf("cycle did not wrap: ended at %q", name)
	}
	for _, want := range themeOrder {
		if !seen[want] {
			t.Fatalf("theme %q never reached in cycle", want)
		}
	}
}

func TestEveryThemeCoversAllContentTypes(t *testing.T) {
	t.Parallel()

	types := []string{"poetry", "prose", "dialogue", "song", "erotica", "fragment"}
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, ct := range types {
			if theme.TypeColors[ct] == "" {
				t.Fatalf("theme %q has no color for %q", name, ct)
			}
		}
	}
}
