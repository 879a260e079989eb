package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the viewer. Atoms keep their element colours
// under every theme; the theme covers chrome, bonds and overlays.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Bond   lipgloss.Color
	Cursor lipgloss.Color
	Well   lipgloss.Color
	Lasso  lipgloss.Color
	Drag   lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:   "lab",
		Title:  lipgloss.Color("#00ffff"),
		Bond:   lipgloss.Color("#8899aa"),
		Cursor: lipgloss.Color("#ffff00"),
		Well:   lipgloss.Color("#ff00ff"),
		Lasso:  lipgloss.Color("#00ff88"),
		Drag:   lipgloss.Color("#ffaa00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Bad:    lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#00ff00"), // green phosphor
		Bond:   lipgloss.Color("#00cc00"),
		Cursor: lipgloss.Color("#88ff88"),
		Well:   lipgloss.Color("#88ff88"),
		Lasso:  lipgloss.Color("#00cc00"),
		Drag:   lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Bond:   lipgloss.Color("#cccccc"),
		Cursor: lipgloss.Color("#0088ff"),
		Well:   lipgloss.Color("#0088ff"),
		Lasso:  lipgloss.Color("#cccccc"),
		Drag:   lipgloss.Color("#ffaa00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Good:   lipgloss.Color("#00ff00"),
		Warn:   lipgloss.Color("#ffaa00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Bond:   lipgloss.Color("#4488aa"),
		Cursor: lipgloss.Color("#ffd700"),
		Well:   lipgloss.Color("#0077be"),
		Lasso:  lipgloss.Color("#00ff88"),
		Drag:   lipgloss.Color("#ffcc00"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Bad:    lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff6b6b"), // coral
		Bond:   lipgloss.Color("#8b6b8c"),
		Cursor: lipgloss.Color("#feca57"),
		Well:   lipgloss.Color("#ff9ff3"),
		Lasso:  lipgloss.Color("#5fd068"),
		Drag:   lipgloss.Color("#ffc048"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Good:   lipgloss.Color("#5fd068"),
		Warn:   lipgloss.Color("#ffc048"),
		Bad:    lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeLab, ThemeRetro, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
