package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the cockpit color scheme.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeGlass = Theme{
		Name:    "glass",
		Primary: lipgloss.Color("#00ccff"),
		Accent:  lipgloss.Color("#ff88ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	// green phosphor, easy on the eyes at night
	ThemeNight = Theme{
		Name:    "night",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ee00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeAmber = Theme{
		Name:    "amber",
		Primary: lipgloss.Color("#ffb000"),
		Accent:  lipgloss.Color("#ffd966"),
		Text:    lipgloss.Color("#ffcc66"),
		Muted:   lipgloss.Color("#805800"),
		Success: lipgloss.Color("#ffd966"),
		Warning: lipgloss.Color("#ff8800"),
		Error:   lipgloss.Color("#ff3300"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeGlass

	Themes = []Theme{ThemeGlass, ThemeNight, ThemeAmber, ThemeMinimal}
)

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeGlass
}

func SetTheme(name string) { CurrentTheme = GetTheme(name) }

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeGlass
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
