package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/callebjorkell/button-deck/internal/button"
)

// ButtonStatus is the queryable state of one button.
type ButtonStatus struct {
	Name   string
	State  string
	Shorts uint64
	Longs  uint64
}

// Snapshot is a point in time view of the deck. It is a plain value, safe to
// use after the board lock is released.
type Snapshot struct {
	Started time.Time
	Buttons []ButtonStatus
	Last    string
	LastAt  time.Time
}

// Board holds the state the HTTP handlers read. The engine is single
// threaded, so the daemon loop copies whatever the handlers need in here
// instead of letting them anywhere near the engine.
type Board struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewBoard(names []string, started time.Time) *Board {
	b := &Board{
		snap: Snapshot{
			Started: started,
			Buttons: make([]ButtonStatus, len(names)),
		},
	}
	for i, n := range names {
		b.snap.Buttons[i] = ButtonStatus{Name: n, State: button.StateNone.String()}
	}
	return b
}

// SetStates copies the per-button classifications out of the engine loop.
// Extra states beyond the configured buttons are ignored.
func (b *Board) SetStates(states []button.State) {
	b.mu.Lock()
	for i, s := range states {
		if i >= len(b.snap.Buttons) {
			break
		}
		b.snap.Buttons[i].State = s.String()
	}
	b.mu.Unlock()
}

// Record counts an event and remembers it as the most recent one.
func (b *Board) Record(e button.Event, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e.Button < 0 || e.Button >= len(b.snap.Buttons) {
		return
	}

	switch e.Type {
	case button.ShortRelease:
		b.snap.Buttons[e.Button].Shorts++
	case button.LongPress:
		b.snap.Buttons[e.Button].Longs++
	}

	b.snap.Last = fmt.Sprintf("%s: %v", b.snap.Buttons[e.Button].Name, e.Type)
	b.snap.LastAt = at
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.snap
	s.Buttons = append([]ButtonStatus(nil), b.snap.Buttons...)
	return s
}
