package neopixel

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	brightness = 160
	ledCounts  = 24
)

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

// LedController drives the feedback ring. One animation owns the LEDs at a
// time; starting a new one cancels the previous and waits for it to hand
// over before the first frame of the new one renders.
type LedController struct {
	ws wsEngine

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// animate replaces the running animation with f. f must return promptly once
// its context is cancelled.
func (l *LedController) animate(f func(ctx context.Context)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel, l.done = cancel, done

	go func() {
		defer close(done)
		f(ctx)
	}()
}

func (l *LedController) stopLocked() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel, l.done = nil, nil
}

// Stop cancels any running animation and blanks the ring.
func (l *LedController) Stop() {
	l.mu.Lock()
	l.stopLocked()
	l.mu.Unlock()
	l.clear()
}

// Close stops animations and releases the LED device.
func (l *LedController) Close() {
	l.Stop()
	l.ws.Fini()
}

func (l *LedController) setColor(color uint32) error {
	leds := l.ws.Leds(0)
	for i := range leds {
		leds[i] = color
	}
	return l.ws.Render()
}

func (l *LedController) clear() {
	if err := l.setColor(0); err != nil {
		log.Debug("Unable to clear LEDs: ", err)
	}
}

// Get the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is the same as the input.
func withBrightness(color, light uint32) uint32 {
	if light >= 100 {
		return color
	}
	if light == 0 {
		return 0
	}

	r, g, b := (color>>16)&0xff, (color>>8)&0xff, color&0xff

	red := r * light / 100
	green := g * light / 100
	blue := b * light / 100

	return (red << 16) | (green << 8) | blue
}

// wheel maps a position on a 256 step color wheel to an RGB color.
func wheel(pos uint32) uint32 {
	pos &= 0xff
	switch {
	case pos < 85:
		return (pos*3)<<16 | (255-pos*3)<<8
	case pos < 170:
		pos -= 85
		return (255-pos*3)<<16 | pos*3
	default:
		pos -= 170
		return (pos*3)<<8 | (255 - pos*3)
	}
}
