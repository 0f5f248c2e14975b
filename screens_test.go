package onion

import (
	"testing"

	"github.com/gekko3d/onion/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEngine struct {
	calls []string
}

type testApp struct {
	screens *Screens[*testApp, *testEngine]
	// snapshots of the registry taken from inside screen calls
	seen []map[string]bool
}

type recordingScreen struct {
	name     string
	resizes  []platform.Size
	inputs   int
	updates  int
	switchTo string
}

func (s *recordingScreen) snapshot(app *testApp) {
	m := map[string]bool{}
	for _, n := range app.screens.Names() {
		scr, ok := app.screens.Get(n)
		_, placeholder := scr.(EmptyScreen[*testApp, *testEngine])
		m[n] = ok && !placeholder
	}
	app.seen = append(app.seen, m)
}

func (s *recordingScreen) Resize(app *testApp, e *testEngine, size platform.Size) {
	s.resizes = append(s.resizes, size)
	e.calls = append(e.calls, s.name+":resize")
	s.snapshot(app)
}

func (s *recordingScreen) Input(app *testApp, e *testEngine, ev platform.KeyEvent) {
	s.inputs++
	e.calls = append(e.calls, s.name+":input")
	if s.switchTo != "" && ev.IsPressed() {
		app.screens.SetCurrent(s.switchTo)
	}
}

func (s *recordingScreen) Update(app *testApp, e *testEngine) {
	s.updates++
	e.calls = append(e.calls, s.name+":update")
	// Nested dispatch must not re-enter this screen.
	app.screens.Update(app, e)
	s.snapshot(app)
}

func newTestApp() (*testApp, *recordingScreen, *recordingScreen) {
	a := &recordingScreen{name: "a", switchTo: "b"}
	b := &recordingScreen{name: "b", switchTo: "a"}
	app := &testApp{}
	app.screens = NewScreens("a", map[string]Screen[*testApp, *testEngine]{
		"a": a,
		"b": b,
	})
	return app, a, b
}

func TestScreens_DispatchIsTotal(t *testing.T) {
	app, a, b := newTestApp()
	e := &testEngine{}

	app.screens.Resize(app, e, platform.Size{Width: 10, Height: 20})
	app.screens.Update(app, e)

	assert.Equal(t, []string{"a:resize", "a:update"}, e.calls)
	assert.Equal(t, 1, a.updates)
	assert.Zero(t, b.updates)

	// During each call the live entry was the placeholder, the rest were real.
	for _, snap := range app.seen {
		assert.Equal(t, map[string]bool{"a": false, "b": true}, snap)
	}

	// Afterwards every name maps back to its own screen.
	got, ok := app.screens.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	got, _ = app.screens.Get("b")
	assert.Same(t, b, got)
	assert.Equal(t, "", app.screens.Live())
}

func TestScreens_SwitchDuringCall(t *testing.T) {
	app, a, b := newTestApp()
	e := &testEngine{}
	press := platform.KeyEvent{Key: platform.KeyTab, State: platform.Pressed}

	app.screens.Input(app, e, press)
	assert.Equal(t, "b", app.screens.Current())
	assert.Equal(t, 1, a.inputs)

	app.screens.Update(app, e)
	assert.Equal(t, 1, b.updates)
	assert.Zero(t, a.updates)

	app.screens.Input(app, e, press)
	assert.Equal(t, "a", app.screens.Current())

	assert.Equal(t, []string{"a", "b"}, app.screens.Names())
	assert.Equal(t, 2, app.screens.Len())
}

// switchingScreen switches to next and dispatches again from inside its
// own Update.
type switchingScreen struct {
	next    string
	updates int
	log     *[]string
}

func (s *switchingScreen) Resize(*testApp, *testEngine, platform.Size)    {}
func (s *switchingScreen) Input(*testApp, *testEngine, platform.KeyEvent) {}

func (s *switchingScreen) Update(app *testApp, e *testEngine) {
	s.updates++
	*s.log = append(*s.log, "enter:"+app.screens.Live())
	app.screens.SetCurrent(s.next)
	app.screens.Update(app, e)
	*s.log = append(*s.log, "leave:"+app.screens.Live())
}

func TestScreens_NestedDispatchAfterSwitchIsSkipped(t *testing.T) {
	var log []string
	a := &switchingScreen{next: "b", log: &log}
	b := &switchingScreen{next: "a", log: &log}
	app := &testApp{}
	app.screens = NewScreens("a", map[string]Screen[*testApp, *testEngine]{"a": a, "b": b})
	e := &testEngine{}

	app.screens.Update(app, e)
	assert.Equal(t, 1, a.updates)
	assert.Zero(t, b.updates)
	assert.Equal(t, []string{"enter:a", "leave:a"}, log)
	assert.Equal(t, "b", app.screens.Current())
	assert.Equal(t, "", app.screens.Live())

	// The switch took effect for the next top-level dispatch.
	app.screens.Update(app, e)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, "a", app.screens.Current())
}

func TestScreens_MissingCurrentIsNoop(t *testing.T) {
	app, a, b := newTestApp()
	e := &testEngine{}

	app.screens.SetCurrent("missing")
	app.screens.Update(app, e)
	app.screens.Resize(app, e, platform.Size{Width: 1, Height: 1})

	assert.Empty(t, e.calls)
	assert.Zero(t, a.updates+b.updates)
	assert.False(t, app.screens.Has("missing"))
	assert.True(t, app.screens.Has("a"))
}

func TestScreens_RegisterNilPanics(t *testing.T) {
	s := NewScreens[*testApp, *testEngine]("x", nil)
	assert.Panics(t, func() { s.Register("x", nil) })

	s.Register("x", EmptyScreen[*testApp, *testEngine]{})
	assert.True(t, s.Has("x"))
}

type panickingScreen struct {
	EmptyScreen[*testApp, *testEngine]
}

func (panickingScreen) Update(*testApp, *testEngine) { panic("boom") }

func TestScreens_ReinsertsAfterPanic(t *testing.T) {
	s := NewScreens("p", map[string]Screen[*testApp, *testEngine]{"p": panickingScreen{}})
	assert.Panics(t, func() { s.Update(&testApp{}, &testEngine{}) })

	scr, ok := s.Get("p")
	require.True(t, ok)
	assert.IsType(t, panickingScreen{}, scr)
	assert.Equal(t, "", s.Live())
}
