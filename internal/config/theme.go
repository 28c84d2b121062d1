package config

// Theme is the accent color choice shown by the launcher UI.
type Theme string

const (
	ThemeTeal   Theme = "teal"
	ThemePurple Theme = "purple"
	ThemeOrange Theme = "orange"
	ThemePink   Theme = "pink"
	ThemeRed    Theme = "red"
	ThemeGreen  Theme = "green"
	ThemeBlue   Theme = "blue"
)

var themeColors = map[Theme]string{
	ThemeTeal:   "#00b4b4",
	ThemePurple: "#b400b4",
	ThemeOrange: "#ff8c00",
	ThemePink:   "#ff69b4",
	ThemeRed:    "#ff4444",
	ThemeGreen:  "#00ff00",
	ThemeBlue:   "#4444ff",
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	_, ok := themeColors[t]
	return ok
}

// Hex returns the accent color for t, or the teal default for an
// unknown theme.
func (t Theme) Hex() string {
	if hex, ok := themeColors[t]; ok {
		return hex
	}
	return themeColors[ThemeTeal]
}

// Themes lists all known theme names in a stable order.
func Themes() []Theme {
	return []Theme{ThemeTeal, ThemePurple, ThemeOrange, ThemePink, ThemeRed, ThemeGreen, ThemeBlue}
}
