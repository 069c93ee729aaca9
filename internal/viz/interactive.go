package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flightsim/internal/config"
)

var presetInfo = map[string]string{
	"takeoff": "autopilot climb-out from the runway",
	"stall":   "nose up, power off, recover",
	"climb":   "hands-off phugoid from trimmed cruise",
	"canyon":  "low pass through a dense field",
}

const (
	stateMenu = iota
	stateFlight
)

// App is the scenario picker that hands off to a Cockpit.
type App struct {
	state   int
	cursor  int
	presets []string
	err     error
	cockpit Cockpit
}

func NewApp() App {
	return App{presets: config.ListPresets()}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateFlight {
		next, cmd := a.cockpit.Update(msg)
		a.cockpit = next.(Cockpit)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.fly(false)
	case "m":
		return a.fly(true)
	}
	return a, nil
}

// fly starts the selected preset, optionally handing the controls to
// the keyboard.
func (a App) fly(manual bool) (App, tea.Cmd) {
	if len(a.presets) == 0 {
		return a, nil
	}
	name := a.presets[a.cursor]
	cfg, err := config.GetPreset(name)
	if err != nil {
		a.err = err
		return a, nil
	}
	if manual {
		cfg.Scenario.Pilot = "manual"
	}
	c, err := NewCockpit(name, cfg)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.cockpit, a.state, a.err = c, stateFlight, nil
	return a, c.Init()
}

func (a App) View() string {
	if a.state == stateFlight {
		return a.cockpit.View()
	}

	st := themeStyles(CurrentTheme)
	var b strings.Builder
	b.WriteString("\n  " + st.title.Render("FLIGHTSIM") + "\n")
	b.WriteString("  " + st.muted.Render("pick a scenario") + "\n\n")
	for i, name := range a.presets {
		line := fmt.Sprintf("%-10s %s", name, presetInfo[name])
		if i == a.cursor {
			b.WriteString("  " + st.key.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + st.muted.Render(line) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n  " + st.warn.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n  " + st.key.Render("j/k") + st.muted.Render(" select  ") +
		st.key.Render("enter") + st.muted.Render(" fly  ") +
		st.key.Render("m") + st.muted.Render(" fly manually  ") +
		st.key.Render("q") + st.muted.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the scenario picker on the alternate screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}

// RunCockpit flies a single scenario without the picker.
func RunCockpit(name string, cfg *config.Config) error {
	c, err := NewCockpit(name, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(c, tea.WithAltScreen()).Run()
	return err
}
