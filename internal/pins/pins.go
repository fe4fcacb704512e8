package pins

import (
	"github.com/callebjorkell/button-deck/internal/button"
)

// Reader reports the raw pressed level of configured input lines. Pressed is
// called once per button per engine tick, so implementations must be cheap
// and callable from the polling goroutine.
type Reader interface {
	Pressed(chip string, line int) bool
	Close() error
}

// Line couples a pin with its electrical pull direction. With a pull-up the
// line reads low while pressed, with a pull-down it reads high.
type Line struct {
	Pin    button.Pin
	PullUp bool
}
