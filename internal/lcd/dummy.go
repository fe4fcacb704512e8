//go:build !pi

package lcd

import (
	log "github.com/sirupsen/logrus"
)

// Without the pi tag the display is traced to the log instead.

func InitLCD() {
	log.Info("Starting the LCD")
}

func PrintLine(l Line, msg string) {
	log.Infof("LCD %v: %q", l, pad(msg))
}

func Clear(l Line) {
	log.Debugf("LCD %v cleared", l)
}
