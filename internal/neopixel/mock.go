//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors []uint32
}

func (d mockEngine) Init() error {
	return nil
}

func (d mockEngine) Render() error {
	log.Tracef("neopixel render: %06x", d.colors[0])
	return nil
}

func (d mockEngine) Wait() error {
	return nil
}

func (d mockEngine) Fini() {
	log.Debug("neopixel: Fini")
}

func (d mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

// NewLedController returns a controller over an in-memory ring, so the rest
// of the daemon behaves normally on a dev machine.
func NewLedController() *LedController {
	return &LedController{
		ws: mockEngine{
			colors: make([]uint32, ledCounts),
		},
	}
}
