// Package button debounces and classifies push-button presses. Buttons are
// polled at a fixed cadence with a caller supplied pin reader, and state
// transitions fire optional callbacks for short releases, long presses and
// long releases. The engine never reads hardware on its own and never
// allocates after New, so it can be driven from a timer loop.
package button

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// State is the last classification recorded for a button. It is sticky: a
// completed press stays readable until the next press cycle overwrites it.
type State int

const (
	StateNone State = iota
	StateShort
	StateLong
)

func (s State) String() string {
	switch s {
	case StateShort:
		return "short"
	case StateLong:
		return "long"
	}
	return "none"
}

// ReadFunc reads the raw, unfiltered level of a single input line. It must
// return true while the button is pressed, with any pull direction already
// folded in, and must be fast enough to run once per button per tick.
type ReadFunc func(chip string, line int) bool

// Handler is invoked with the index of the button that produced the event.
// Handlers run synchronously inside Update and must not block or call back
// into the engine.
type Handler func(button int)

// Pin addresses a single input line on a named chip. The chip name is passed
// through to the reader untouched, so readers that only know line numbers can
// ignore it.
type Pin struct {
	Chip string
	Line int
}

// Button describes one physical button. LongPress overrides the engine wide
// long press threshold when non-zero.
type Button struct {
	Pin       Pin
	LongPress time.Duration
}

// Config carries the engine wide settings. Zero durations fall back to the
// defaults below, nil handlers are no-ops.
type Config struct {
	// Tick is the period Update is expected to be called at. Debounce and
	// long press durations are converted to whole ticks by integer division,
	// so they should be multiples of Tick or accept truncation.
	Tick      time.Duration
	Debounce  time.Duration
	LongPress time.Duration

	Read ReadFunc

	OnShortRelease Handler
	OnLongPress    Handler
	OnLongRelease  Handler

	// RepeatLongPress makes OnLongPress fire on every tick a press stays at
	// or past the threshold, instead of exactly once when it is reached.
	RepeatLongPress bool
}

const (
	DefaultTick      = 10 * time.Millisecond
	DefaultDebounce  = 20 * time.Millisecond
	DefaultLongPress = 1000 * time.Millisecond

	maxButtons = 255
)

var (
	ErrNoReader       = errors.New("pin read function is missing")
	ErrNoButtons      = errors.New("no buttons configured")
	ErrTooManyButtons = errors.New("at most 255 buttons are supported")
)

type buttonState struct {
	longTicks uint32

	locked      bool
	prevPressed bool
	active      State
	lockCount   uint32
	longCount   uint32
}

// Engine advances the debounce state machine of a fixed set of buttons, one
// tick at a time. It is not safe for concurrent use: Update and State must
// be called from the same goroutine, or be externally synchronized.
type Engine struct {
	buttons []Button // borrowed from the caller, never copied
	state   []buttonState

	read          ReadFunc
	tick          time.Duration
	debounceTicks uint32
	repeat        bool

	shortRelease Handler
	longPress    Handler
	longRelease  Handler
}

// New creates an engine for the given buttons. The button slice is borrowed
// as-is and must not be mutated afterwards. All runtime state starts zeroed:
// unlocked, no counts, no previous classification.
func New(cfg Config, buttons []Button) (*Engine, error) {
	if cfg.Read == nil {
		return nil, ErrNoReader
	}
	if len(buttons) == 0 {
		return nil, ErrNoButtons
	}
	if len(buttons) > maxButtons {
		return nil, ErrTooManyButtons
	}

	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}

	e := &Engine{
		buttons:       buttons,
		state:         make([]buttonState, len(buttons)),
		read:          cfg.Read,
		tick:          cfg.Tick,
		debounceTicks: uint32(cfg.Debounce / cfg.Tick),
		repeat:        cfg.RepeatLongPress,
		shortRelease:  cfg.OnShortRelease,
		longPress:     cfg.OnLongPress,
		longRelease:   cfg.OnLongRelease,
	}
	if e.shortRelease == nil {
		e.shortRelease = func(int) {}
	}
	if e.longPress == nil {
		e.longPress = func(int) {}
	}
	if e.longRelease == nil {
		e.longRelease = func(int) {}
	}

	for i := range buttons {
		long := buttons[i].LongPress
		if long <= 0 {
			long = cfg.LongPress
		}
		lt := uint32(long / cfg.Tick)
		if lt == 0 {
			// Thresholds shorter than one tick fire on the first locked tick.
			lt = 1
		}
		e.state[i].longTicks = lt
	}

	log.Debugf("Initialized button engine with %d buttons, tick %v", len(buttons), cfg.Tick)
	return e, nil
}

// Update advances every button by exactly one tick, in index order. Index
// order also decides callback order when several buttons transition on the
// same tick. Callbacks run synchronously before Update returns.
func (e *Engine) Update() {
	for i := range e.buttons {
		st := &e.state[i]
		if e.read(e.buttons[i].Pin.Chip, e.buttons[i].Pin.Line) {
			if !st.locked {
				// lockCount integrates pressed ticks across contact bounce
				// and is kept over short released gaps.
				st.lockCount++
				if st.lockCount >= e.debounceTicks {
					st.locked = true
				}
			}
			if st.locked && st.prevPressed {
				st.longCount++
				if st.longCount == st.longTicks || (e.repeat && st.longCount > st.longTicks) {
					st.active = StateLong
					e.longPress(i)
				}
			}
			st.prevPressed = true
		} else {
			if st.locked {
				if st.lockCount > 0 {
					// Release debounce: drain the ticks that confirmed the
					// press before accepting the release.
					st.lockCount--
				} else {
					st.locked = false
					if st.longCount < st.longTicks {
						st.active = StateShort
						e.shortRelease(i)
					} else if st.active == StateLong {
						e.longRelease(i)
					}
				}
			} else {
				st.longCount = 0
			}
		}
	}
}

// State returns the last classification recorded for the button at the given
// index. Out-of-range indexes return StateNone rather than failing, so
// polling callers never need an error path. The value is stable between
// Update calls.
func (e *Engine) State(i int) State {
	if i < 0 || i >= len(e.state) {
		return StateNone
	}
	return e.state[i].active
}

// Len returns the number of configured buttons.
func (e *Engine) Len() int {
	return len(e.buttons)
}

// Tick returns the effective update period, after defaulting.
func (e *Engine) Tick() time.Duration {
	return e.tick
}
