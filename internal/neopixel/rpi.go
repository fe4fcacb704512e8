//go:build pi

package neopixel

import (
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

// NewLedController claims the ws281x ring. The LED count and brightness are
// fixed for the deck hardware.
func NewLedController() *LedController {
	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = brightness
	opt.Channels[0].LedCount = ledCounts

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		log.Fatal("Unable to create the LED device: ", err)
	}
	if err := dev.Init(); err != nil {
		log.Fatal("Unable to initialize the LED device: ", err)
	}

	return &LedController{
		ws: dev,
	}
}
