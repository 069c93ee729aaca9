package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/pilot"
	"github.com/san-kum/flightsim/internal/sim"
	"github.com/san-kum/flightsim/internal/world"
)

const (
	canvasWidth     = 64
	canvasHeight    = 22
	historyCapacity = 600
	trailCapacity   = 400
	trailEvery      = 10
	mapSpan         = 3000.0
	frameRate       = 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type viewMode int

const (
	viewChase viewMode = iota
	viewMap
)

// Cockpit is the interactive flight front end. Each frame measures the
// real time since the previous one, clamps it and advances the stepper
// once with the pilot's controls.
type Cockpit struct {
	name    string
	world   *world.World
	stepper *flight.Stepper
	pilot   pilot.Pilot
	manual  *pilot.Manual
	start   flight.State

	t, dt, maxDt float64
	last         time.Time
	paused       bool
	view         viewMode
	showHelp     bool
	frames       int
	resets, hits int

	canvas   *Canvas
	altitude []float64
	speed    []float64
	trail    []geom.Vec3
}

// NewCockpit builds a cockpit for a scenario. The scenario's pilot flies
// the aircraft; with the manual pilot the keyboard does.
func NewCockpit(name string, cfg *config.Config) (Cockpit, error) {
	if err := cfg.Validate(); err != nil {
		return Cockpit{}, err
	}
	w, err := world.Generate(cfg.World)
	if err != nil {
		return Cockpit{}, err
	}
	pl, err := cfg.NewPilot()
	if err != nil {
		return Cockpit{}, err
	}

	m := Cockpit{
		name:     name,
		world:    w,
		stepper:  flight.NewStepper(cfg.Physics, w.Field),
		pilot:    pl,
		start:    cfg.InitialState(),
		dt:       cfg.Run.Dt,
		maxDt:    cfg.Run.MaxDt,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		altitude: make([]float64, 0, historyCapacity),
		speed:    make([]float64, 0, historyCapacity),
		trail:    make([]geom.Vec3, 0, trailCapacity),
	}
	m.manual, _ = pl.(*pilot.Manual)
	m.stepper.State = m.start
	return m, nil
}

func (m Cockpit) Init() tea.Cmd { return tick() }

func (m Cockpit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		now := time.Time(msg)
		frame := m.dt
		if !m.last.IsZero() {
			frame = now.Sub(m.last).Seconds()
		}
		m.last = now
		if !m.paused {
			m.advance(sim.ClampDt(frame, m.maxDt))
		}
		return m, tick()
	}
	return m, nil
}

// handleKey keeps quitting off the letter keys since q and e steer.
func (m Cockpit) handleKey(msg tea.KeyMsg) (Cockpit, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
		return m, nil
	case "tab":
		m.view = (m.view + 1) % 2
		return m, nil
	case "t":
		NextTheme()
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.manual != nil {
		m.manual.Press(key, m.t)
		return m, nil
	}
	if key == "r" {
		m.restart()
	}
	return m, nil
}

// advance runs one simulation tick of length dt.
func (m *Cockpit) advance(dt float64) {
	if dt <= 0 {
		return
	}
	c := m.pilot.Controls(m.stepper.State, m.t)
	s := m.stepper.Step(c, dt)
	m.t += dt
	m.frames++

	if m.stepper.Last.Reset {
		m.resets++
		m.clearHistory()
	}
	m.hits += len(m.stepper.Last.Hits)

	m.altitude = appendCapped(m.altitude, s.Altitude(m.stepper.Params), historyCapacity)
	m.speed = appendCapped(m.speed, s.Speed(), historyCapacity)
	if m.frames%trailEvery == 0 {
		m.trail = appendCapped(m.trail, s.Position, trailCapacity)
	}
}

// restart puts the aircraft back at the scenario start for pilots that
// cannot request a reset themselves.
func (m *Cockpit) restart() {
	m.stepper.State = m.start
	m.stepper.Last = flight.Report{Reset: true}
	if r, ok := m.pilot.(pilot.Resetter); ok {
		r.Reset()
	}
	m.t = 0
	m.resets++
	m.clearHistory()
}

func (m *Cockpit) clearHistory() {
	m.altitude = m.altitude[:0]
	m.speed = m.speed[:0]
	m.trail = m.trail[:0]
}

func appendCapped[T any](xs []T, x T, capacity int) []T {
	xs = append(xs, x)
	if len(xs) > capacity {
		xs = xs[len(xs)-capacity:]
	}
	return xs
}

func (m Cockpit) State() flight.State { return m.stepper.State }
func (m Cockpit) Time() float64       { return m.t }

func (m Cockpit) View() string {
	st := themeStyles(CurrentTheme)
	s := m.stepper.State

	m.canvas.Clear()
	if m.view == viewMap {
		DrawMap(m.canvas, MapView{Center: s.Position, Span: mapSpan}, s, m.world, m.trail)
	} else {
		Render3D(m.canvas, Scene(s, m.world), NewChaseCamera(s))
	}
	left := st.canvas.Render(m.canvas.String())

	right := st.panel.Render(m.hud(st))
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, main, st.panel.Render(helpText(st)))
	}
	return main
}

func (m Cockpit) hud(st styles) string {
	s, p := m.stepper.State, m.stepper.Params
	var b strings.Builder

	b.WriteString(st.title.Render(strings.ToUpper(m.name)) + "\n")
	b.WriteString(m.status(st) + "\n\n")

	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.1f s", m.t))
	row("speed", fmt.Sprintf("%.1f m/s", s.Speed()))
	row("altitude", fmt.Sprintf("%.1f m", s.Altitude(p)))
	row("climb", fmt.Sprintf("%+.1f m/s", s.Velocity.Y()))
	row("pitch", fmt.Sprintf("%+.1f°", deg(s.Pitch())))
	row("bank", fmt.Sprintf("%+.1f°", deg(s.Bank())))
	row("heading", fmt.Sprintf("%03.0f°", math.Mod(deg(s.Heading())+360, 360)))
	row("prop", fmt.Sprintf("%.0f rad/s", propellerRate(s)))
	b.WriteString(st.label.Render("throttle") + ProgressBar(s.Throttle, 16, st) +
		st.value.Render(fmt.Sprintf(" %3.0f%%", s.Throttle*100)) + "\n")
	row("hits", fmt.Sprintf("%d", m.hits))
	if w := m.world; w != nil {
		if i, gap := w.Nearest(s.Position); i >= 0 {
			row("terrain", fmt.Sprintf("%.0f m", gap))
		}
	}

	b.WriteString("\n" + st.label.Render("speed") + st.graph.Render(Sparkline(m.speed, 24)) + "\n")
	if len(m.altitude) > 1 {
		chart := asciigraph.Plot(m.altitude, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("altitude (m)"))
		b.WriteString(st.graph.Render(chart) + "\n")
	}

	b.WriteString("\n" + Separator(34, st) + "\n")
	b.WriteString(st.key.Render("tab") + st.muted.Render(" view  ") +
		st.key.Render("space") + st.muted.Render(" pause  ") +
		st.key.Render("?") + st.muted.Render(" help  ") +
		st.key.Render("esc") + st.muted.Render(" quit"))
	return b.String()
}

func (m Cockpit) status(st styles) string {
	last := m.stepper.Last
	var tags []string
	switch {
	case m.paused:
		tags = append(tags, st.warn.Render("PAUSED"))
	case last.Contact.Grounded:
		tags = append(tags, st.ok.Render("GROUND"))
	default:
		tags = append(tags, st.ok.Render("AIRBORNE"))
	}
	if last.Forces.Stalled {
		tags = append(tags, st.alarm.Render("STALL"))
	}
	if len(last.Hits) > 0 {
		tags = append(tags, st.alarm.Render("IMPACT"))
	}
	if m.manual == nil {
		tags = append(tags, st.muted.Render("auto"))
	}
	return strings.Join(tags, " ")
}

func helpText(st styles) string {
	keys := [][2]string{
		{"+ / -", "throttle up / down"},
		{"w s / ↑ ↓", "pitch down / up"},
		{"a d / ← →", "roll left / right"},
		{"q e", "yaw left / right"},
		{"r", "reset aircraft"},
		{"space", "pause"},
		{"tab", "chase view / map"},
		{"t", "cycle theme"},
		{"esc", "quit"},
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(st.key.Width(12).Render(k[0]) + st.muted.Render(k[1]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// propellerRate is the display spin rate of the propeller in rad/s.
func propellerRate(s flight.State) float64 {
	return s.Throttle*35 + s.Speed()*0.25
}
