package neopixel

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Boot sweeps the color wheel once so a fresh start is visible on the ring.
func (l *LedController) Boot() {
	l.animate(func(ctx context.Context) {
		defer l.clear()
		log.Debug("Displaying boot sweep")

		tick := time.NewTicker(15 * time.Millisecond)
		defer tick.Stop()

		for step := uint32(0); step <= 255; step++ {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			c := wheel(step)
			if step < 32 {
				c = withBrightness(c, step*100/32)
			}
			if step > 224 {
				c = withBrightness(c, (255-step)*100/31)
			}

			if err := l.setColor(c); err != nil {
				log.Debug("Stopping boot sweep: ", err)
				return
			}
		}
	})
}

// Tap flashes the color briefly, acknowledging a short press.
func (l *LedController) Tap(color uint32) {
	l.animate(func(ctx context.Context) {
		defer l.clear()
		log.Debugf("Flashing %06x", color)

		frames := []struct {
			color uint32
			hold  time.Duration
		}{
			{color, 250 * time.Millisecond},
			{0, 40 * time.Millisecond},
			{color, 120 * time.Millisecond},
		}

		for _, f := range frames {
			if err := l.setColor(f.color); err != nil {
				log.Debug("Stopping flash: ", err)
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(f.hold):
			}
		}
	})
}

// Hold breathes the color for as long as a press is held. It runs until the
// next animation or Stop takes over.
func (l *LedController) Hold(color uint32) {
	l.animate(func(ctx context.Context) {
		defer l.clear()
		log.Debugf("Breathing %06x", color)

		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()

		light, up := uint32(0), true
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			if err := l.setColor(withBrightness(color, light)); err != nil {
				log.Debug("Stopping breath: ", err)
				return
			}

			if up {
				light++
				if light >= 100 {
					up = false
				}
			} else {
				light--
				if light == 0 {
					up = true
				}
			}
		}
	})
}
