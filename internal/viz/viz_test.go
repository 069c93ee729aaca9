package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/world"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func manualCockpit(t *testing.T) Cockpit {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.World.Mountains = 0
	cfg.Scenario.Pilot = "manual"
	c, err := NewCockpit("test", cfg)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func update(t *testing.T, c Cockpit, msg tea.Msg) (Cockpit, tea.Cmd) {
	t.Helper()
	next, cmd := c.Update(msg)
	out, ok := next.(Cockpit)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestCanvasSetAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.DotsX() != 8 || c.DotsY() != 8 {
		t.Fatalf("dots = %dx%d, want 8x8", c.DotsX(), c.DotsY())
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if !c.Lit(0, 0) || !c.Lit(1, 3) || c.Lit(1, 0) {
		t.Error("unexpected dot state")
	}
	if got := []rune(strings.Split(c.String(), "\n")[0])[0]; got != brailleBlank|0x01|0x80 {
		t.Errorf("cell = %U", got)
	}

	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.Lit(i, i) {
			t.Errorf("diagonal dot (%d,%d) not set", i, i)
		}
	}

	c.Clear()
	c.DrawLine(0, 0, 1e6, 0)
	if c.Lit(0, 0) {
		t.Error("far off-canvas segment should be dropped")
	}
}

func TestMapViewProject(t *testing.T) {
	c := NewCanvas(50, 25)
	v := MapView{Center: geom.V(100, 0, 100), Span: 1000}

	x, y := v.Project(geom.V(100, 50, 100), c)
	if x != 50 || y != 50 {
		t.Errorf("center projects to (%d,%d), want (50,50)", x, y)
	}
	// north (-Z) is up the screen, east (+X) is right
	x, y = v.Project(geom.V(200, 0, 0), c)
	if x != 60 || y != 40 {
		t.Errorf("north-east point projects to (%d,%d), want (60,40)", x, y)
	}
}

func TestDrawMap(t *testing.T) {
	p := flight.DefaultParams()
	s := flight.Reset(p)
	w := &world.World{Mountains: []world.Mountain{{Base: geom.V(500, 0, 0), Radius: 100, Height: 300}}}

	c := NewCanvas(50, 25)
	DrawMap(c, MapView{Center: s.Position, Span: 2000}, s, w, []geom.Vec3{geom.V(0, 0, 500)})

	if !c.Lit(50, 50) {
		t.Error("aircraft marker missing at the center")
	}
	if !c.Lit(50, 45) {
		t.Error("heading arrow should point up the screen for heading 0")
	}
	// mountain ring crosses the x axis 100 m past its center
	if !c.Lit(80, 50) {
		t.Error("mountain outline missing")
	}
	if !c.Lit(50, 75) {
		t.Error("trail point missing")
	}
}

func TestChaseCameraProjectsAheadToCenter(t *testing.T) {
	p := flight.DefaultParams()
	s := flight.Reset(p)
	s.Position = geom.V(0, 200, 0)
	cam := NewChaseCamera(s)
	c := NewCanvas(40, 20)

	x, y, ok := cam.Project(cam.Target, c)
	if !ok {
		t.Fatal("look-at point should be visible")
	}
	if absInt(x-c.DotsX()/2) > 1 || absInt(y-c.DotsY()/2) > 1 {
		t.Errorf("target projects to (%d,%d), want the canvas center", x, y)
	}

	behind := cam.Eye.Add(cam.Eye.Sub(cam.Target))
	if _, _, ok := cam.Project(behind, c); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestChaseCameraFollowsOrientation(t *testing.T) {
	s := flight.Reset(flight.DefaultParams())
	s.Position = geom.V(10, 100, 0)

	cam := NewChaseCamera(s)
	if want := geom.V(10, 108, 22); cam.Eye.Sub(want).Len() > 1e-9 {
		t.Errorf("level eye = %v, want %v", cam.Eye, want)
	}
	if want := geom.V(10, 102, -15); cam.Target.Sub(want).Len() > 1e-9 {
		t.Errorf("level target = %v, want %v", cam.Target, want)
	}

	// turned to face +X the camera trails along -X
	s.Orientation = geom.AxisAngle(geom.Up, -math.Pi/2)
	cam = NewChaseCamera(s)
	if want := geom.V(-12, 108, 0); cam.Eye.Sub(want).Len() > 1e-9 {
		t.Errorf("turned eye = %v, want %v", cam.Eye, want)
	}
}

func TestPropellerRate(t *testing.T) {
	s := flight.Reset(flight.DefaultParams())
	if got := propellerRate(s); got != 0 {
		t.Errorf("parked, idle propeller = %f", got)
	}
	s.Throttle = 1
	s.Velocity = geom.V(0, 0, -40)
	if got := propellerRate(s); math.Abs(got-45) > 1e-9 {
		t.Errorf("propeller rate = %f, want 45", got)
	}
}

func TestRender3DDrawsScene(t *testing.T) {
	p := flight.DefaultParams()
	s := flight.Reset(p)
	s.Position = geom.V(0, 100, 0)
	w := &world.World{Mountains: []world.Mountain{{Base: geom.V(0, 0, -800), Radius: 200, Height: 600}}}

	scene := Scene(s, w)
	if len(scene.Edges) == 0 {
		t.Fatal("empty scene")
	}
	c := NewCanvas(40, 20)
	Render3D(c, scene, NewChaseCamera(s))
	if strings.Trim(c.String(), string(rune(brailleBlank))+"\n") == "" {
		t.Error("nothing was drawn")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := []rune(Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4))
	if len(got) != 4 || got[0] != '▁' || got[3] != '█' {
		t.Errorf("sparkline = %q, want the last 4 values scaled", string(got))
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeGlass.Name)

	SetTheme("night")
	if CurrentTheme.Name != "night" {
		t.Errorf("theme = %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "amber" {
		t.Errorf("next theme = %s, want amber", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != ThemeGlass.Name {
		t.Error("unknown theme should fall back to the default")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}

func TestCockpitTickClampsFrameTime(t *testing.T) {
	c := manualCockpit(t)
	start := time.Unix(1000, 0)

	c, cmd := update(t, c, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick should schedule the next frame")
	}
	if math.Abs(c.Time()-config.DefaultDt) > 1e-12 {
		t.Errorf("first frame advanced %f, want the configured dt", c.Time())
	}

	before := c.Time()
	c, _ = update(t, c, TickMsg(start.Add(10*time.Second)))
	if got := c.Time() - before; math.Abs(got-flight.DefaultMaxDt) > 1e-12 {
		t.Errorf("stalled frame advanced %f, want clamped to %f", got, flight.DefaultMaxDt)
	}
}

func TestCockpitManualThrottle(t *testing.T) {
	c := manualCockpit(t)
	now := time.Unix(0, 0)
	c, _ = update(t, c, TickMsg(now))

	for i := 1; i <= 30; i++ {
		c, _ = update(t, c, runes("+"))
		now = now.Add(time.Second / 60)
		c, _ = update(t, c, TickMsg(now))
	}
	if c.State().Throttle <= 0 {
		t.Errorf("throttle = %f, want opened by key presses", c.State().Throttle)
	}
}

func TestCockpitManualReset(t *testing.T) {
	c := manualCockpit(t)
	c.stepper.State.Position = geom.V(300, 80, -40)
	c.stepper.State.Throttle = 0.7

	c, _ = update(t, c, runes("r"))
	c, _ = update(t, c, TickMsg(time.Unix(0, 0)))

	s := c.State()
	if s.Throttle != 0 || s.Position.X() != 0 || s.Position.Z() != 0 {
		t.Errorf("state after reset = %+v", s)
	}
	if c.resets != 1 {
		t.Errorf("resets = %d, want 1", c.resets)
	}
}

func TestCockpitPause(t *testing.T) {
	c := manualCockpit(t)
	c, _ = update(t, c, tea.KeyMsg{Type: tea.KeySpace})
	if !c.paused {
		t.Fatal("space should pause")
	}
	c, _ = update(t, c, TickMsg(time.Unix(0, 0)))
	if c.Time() != 0 {
		t.Errorf("paused cockpit advanced to %f", c.Time())
	}
	if !strings.Contains(c.View(), "PAUSED") {
		t.Error("view should show the pause state")
	}
}

func TestCockpitQuitAndView(t *testing.T) {
	c := manualCockpit(t)

	_, cmd := update(t, c, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}

	// q yaws rather than quitting
	_, cmd = update(t, c, runes("q"))
	if cmd != nil {
		t.Error("q is a flight control, not quit")
	}

	c, _ = update(t, c, TickMsg(time.Unix(0, 0)))
	view := c.View()
	for _, want := range []string{"TEST", "speed", "altitude", "throttle", "GROUND"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	c, _ = update(t, c, tea.KeyMsg{Type: tea.KeyTab})
	if c.view != viewMap {
		t.Error("tab should switch to the map")
	}
	if c.View() == "" {
		t.Error("empty map view")
	}
}

func TestCockpitRestartNonManual(t *testing.T) {
	cfg, err := config.GetPreset("climb")
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCockpit("climb", cfg)
	if err != nil {
		t.Fatal(err)
	}
	start := c.State()
	for i := 0; i < 30; i++ {
		c.advance(cfg.Run.Dt)
	}
	if c.State() == start {
		t.Fatal("aircraft did not move")
	}

	c, _ = update(t, c, runes("r"))
	if c.State() != start || c.Time() != 0 {
		t.Error("r should restart the scenario")
	}
	if !strings.Contains(c.View(), "auto") {
		t.Error("view should mark a non-manual pilot")
	}
}

func TestAppStartsPreset(t *testing.T) {
	a := NewApp()
	if len(a.presets) == 0 {
		t.Fatal("no presets")
	}
	if !strings.Contains(a.View(), a.presets[0]) {
		t.Error("menu should list presets")
	}

	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a = next.(App)
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}

	next, cmd := a.Update(runes("m"))
	a = next.(App)
	if a.state != stateFlight || cmd == nil {
		t.Fatalf("m should start a manual flight, err=%v", a.err)
	}
	if a.cockpit.manual == nil {
		t.Error("m should hand control to the keyboard")
	}
}
