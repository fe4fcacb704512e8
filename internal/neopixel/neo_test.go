package neopixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithBrightness(t *testing.T) {
	tt := []struct {
		name   string
		input  uint32
		light  uint32
		output uint32
	}{
		{
			"full brightness keeps the color",
			0x123456,
			100,
			0x123456,
		},
		{
			"above full clamps to the color",
			0x123456,
			150,
			0x123456,
		},
		{
			"zero brightness is off",
			0xffffff,
			0,
			0x000000,
		},
		{
			"quarter brightness",
			0x804020,
			25,
			0x201008,
		},
		{
			"channels round down independently",
			0x010203,
			50,
			0x000101,
		},
		{
			"white at 80 percent",
			0xffffff,
			80,
			0xcccccc,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			o := withBrightness(tc.input, tc.light)
			assert.Equal(t, tc.output, o)
		})
	}
}

func TestWheel(t *testing.T) {
	assert.Equal(t, uint32(0x00ff00), wheel(0))
	assert.Equal(t, uint32(0xff0000), wheel(85))
	assert.Equal(t, uint32(0x0000ff), wheel(170))
	assert.Equal(t, wheel(0), wheel(256), "wheel wraps around")
}

func TestStopBlanksRing(t *testing.T) {
	l := NewLedController()

	l.Hold(0xff00ff)
	l.Tap(0x00ff00)
	l.Stop()

	// Stop waits for the animation handover, so the ring must be dark now.
	for i, c := range l.ws.Leds(0) {
		assert.Zero(t, c, "led %d still lit", i)
	}

	// A second stop without a running animation is a no-op.
	l.Stop()
}
