//go:build pi

package pins

import (
	"fmt"

	"github.com/callebjorkell/button-deck/internal/button"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type line struct {
	pin     gpio.PinIO
	pressed gpio.Level
}

type hardware struct {
	lines map[button.Pin]line
}

// New configures the given lines as inputs with their pull resistors and
// returns a reader over them.
func New(lines []Line) (Reader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialize periph: %w", err)
	}

	h := &hardware{lines: make(map[button.Pin]line, len(lines))}
	for _, l := range lines {
		p := gpioreg.ByName(fmt.Sprintf("GPIO%d", l.Pin.Line))
		if p == nil {
			return nil, fmt.Errorf("no pin named GPIO%d", l.Pin.Line)
		}

		pull, pressed := gpio.PullDown, gpio.High
		if l.PullUp {
			pull, pressed = gpio.PullUp, gpio.Low
		}
		if err := p.In(pull, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure GPIO%d: %w", l.Pin.Line, err)
		}

		h.lines[l.Pin] = line{pin: p, pressed: pressed}
		log.Debugf("Configured GPIO%d, pull-up: %v", l.Pin.Line, l.PullUp)
	}
	return h, nil
}

func (h *hardware) Pressed(chip string, pin int) bool {
	l, ok := h.lines[button.Pin{Chip: chip, Line: pin}]
	if !ok {
		return false
	}
	return l.pin.Read() == l.pressed
}

func (h *hardware) Close() error {
	var first error
	for _, l := range h.lines {
		if err := l.pin.Halt(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
