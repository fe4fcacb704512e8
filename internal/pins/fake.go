package pins

import (
	"sync"

	"github.com/callebjorkell/button-deck/internal/button"
)

// Fake is a settable Reader for tests. Set flips the raw level of a pin and
// the next Pressed call sees it, the way a test would wiggle a real input
// between engine ticks.
type Fake struct {
	mu      sync.Mutex
	pressed map[button.Pin]bool
}

func NewFake() *Fake {
	return &Fake{pressed: make(map[button.Pin]bool)}
}

func (f *Fake) Set(pin button.Pin, pressed bool) {
	f.mu.Lock()
	f.pressed[pin] = pressed
	f.mu.Unlock()
}

func (f *Fake) Pressed(chip string, pin int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pressed[button.Pin{Chip: chip, Line: pin}]
}

func (f *Fake) Close() error {
	return nil
}
