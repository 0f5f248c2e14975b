package onion

import (
	"fmt"
	"sort"

	"github.com/gekko3d/onion/platform"
)

// Screen is one mutually exclusive behavior of an application. Each call
// receives the owning app and the engine, both mutable.
type Screen[A, E any] interface {
	Resize(app A, engine E, size platform.Size)
	Input(app A, engine E, ev platform.KeyEvent)
	Update(app A, engine E)
}

// EmptyScreen does nothing. It fills a screen's slot while that screen is
// running.
type EmptyScreen[A, E any] struct{}

func (EmptyScreen[A, E]) Resize(A, E, platform.Size)    {}
func (EmptyScreen[A, E]) Input(A, E, platform.KeyEvent) {}
func (EmptyScreen[A, E]) Update(A, E)                   {}

// Screens is a registry of named screens plus the name of the current one.
//
// Dispatch detaches the current screen, leaves an EmptyScreen in its slot,
// runs the call, and puts the screen back. Every registered name therefore
// maps to some screen at all times, a screen may switch the current name or
// touch other entries during its own call. A nested dispatch from inside a
// call is skipped, whatever the current name is by then.
type Screens[A, E any] struct {
	current string
	live    string
	entries map[string]Screen[A, E]
	logger  Logger
}

func NewScreens[A, E any](current string, screens map[string]Screen[A, E]) *Screens[A, E] {
	s := &Screens[A, E]{
		current: current,
		entries: make(map[string]Screen[A, E], len(screens)),
		logger:  NewNopLogger(),
	}
	for name, scr := range screens {
		s.Register(name, scr)
	}
	return s
}

func (s *Screens[A, E]) SetLogger(l Logger) {
	s.logger = orNop(l)
}

// Register adds or replaces a screen. Registering nil is a programming
// error and panics.
func (s *Screens[A, E]) Register(name string, scr Screen[A, E]) {
	if scr == nil {
		panic(fmt.Sprintf("onion: nil screen registered as %q", name))
	}
	s.entries[name] = scr
}

// SetCurrent selects the screen that receives the next dispatch. Unknown
// names are accepted; dispatch to them is skipped.
func (s *Screens[A, E]) SetCurrent(name string) {
	if name != s.current {
		s.logger.Debugf("screen switch %q -> %q", s.current, name)
	}
	s.current = name
}

func (s *Screens[A, E]) Current() string { return s.current }

// Live returns the name of the screen currently executing a call, or "".
func (s *Screens[A, E]) Live() string { return s.live }

func (s *Screens[A, E]) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Get returns the screen stored under name. While that screen is live the
// stored value is the placeholder.
func (s *Screens[A, E]) Get(name string) (Screen[A, E], bool) {
	scr, ok := s.entries[name]
	return scr, ok
}

func (s *Screens[A, E]) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Screens[A, E]) Len() int { return len(s.entries) }

func (s *Screens[A, E]) Resize(app A, engine E, size platform.Size) {
	s.dispatch(func(scr Screen[A, E]) { scr.Resize(app, engine, size) })
}

func (s *Screens[A, E]) Input(app A, engine E, ev platform.KeyEvent) {
	s.dispatch(func(scr Screen[A, E]) { scr.Input(app, engine, ev) })
}

func (s *Screens[A, E]) Update(app A, engine E) {
	s.dispatch(func(scr Screen[A, E]) { scr.Update(app, engine) })
}

func (s *Screens[A, E]) dispatch(call func(Screen[A, E])) {
	if s.live != "" {
		// At most one screen runs at a time, even if the live one switched
		// the current name before dispatching again.
		s.logger.Debugf("nested dispatch while %q is live, skipping", s.live)
		return
	}
	name := s.current
	scr, ok := s.entries[name]
	if !ok {
		s.logger.Debugf("no screen registered as %q, skipping", name)
		return
	}

	s.entries[name] = EmptyScreen[A, E]{}
	s.live = name
	defer func() {
		s.entries[name] = scr
		s.live = ""
	}()

	call(scr)
}
