package lcd

import (
	"fmt"
	"github.com/callebjorkell/button-deck/internal/button"
	"periph.io/x/conn/v3/gpio"
	"time"
)

type Line byte

func (l Line) String() string {
	switch l {
	case Line1:
		return "L1"
	case Line2:
		return "L2"
	}
	return "N/A"
}

const (
	registerSelectionPin = "GPIO4"
	clockEdgePin         = "GPIO17"
	data4Pin             = "GPIO25"
	data5Pin             = "GPIO22"
	data6Pin             = "GPIO23"
	data7Pin             = "GPIO24"

	Line1 Line = 0x80
	Line2 Line = 0xC0

	lineWidth   = 16
	character   = gpio.High
	command     = gpio.Low
	signalPulse = 500000 * time.Nanosecond
	signalDelay = 500000 * time.Nanosecond
)

var (
	registerSelection gpio.PinIO
	clockEdge         gpio.PinIO
	dataPins          [4]gpio.PinIO
)

// pad fits a message to exactly one display line.
func pad(msg string) string {
	return fmt.Sprintf("%-16s", msg)[:lineWidth]
}

// Banner shows the idle screen.
func Banner() {
	PrintLine(Line1, "   button-deck")
	Clear(Line2)
}

// Event shows a classified button event, name on top, classification below.
func Event(name string, t button.EventType) {
	PrintLine(Line1, name)
	PrintLine(Line2, t.String())
}
