package button

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The timing tests drive the engine the way a timer loop would: a fake
// millisecond clock advances by one tick per Update, and the reader reports
// pressed inside a fixed window of that clock.

func TestShortPress(t *testing.T) {
	now := 0
	var firedAt []int

	e, err := New(Config{
		Tick:     10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Read: func(string, int) bool {
			return now >= 10 && now <= 40
		},
		OnShortRelease: func(b int) {
			assert.Equal(t, 0, b)
			firedAt = append(firedAt, now)
		},
		OnLongPress:   func(int) { t.Error("unexpected long press") },
		OnLongRelease: func(int) { t.Error("unexpected long release") },
	}, []Button{{Pin: Pin{Chip: "gpiochip0", Line: 17}}})
	require.NoError(t, err)

	for ; now <= 200; now += 10 {
		e.Update()
		if now < 70 {
			assert.Equal(t, StateNone, e.State(0), "at %dms", now)
		} else {
			assert.Equal(t, StateShort, e.State(0), "at %dms", now)
		}
	}

	// Release debounce drains the two confirmation ticks before finalizing.
	assert.Equal(t, []int{70}, firedAt)
}

func TestLongPress(t *testing.T) {
	now := 0
	var longAt, releaseAt []int

	e, err := New(Config{
		Tick:      10 * time.Millisecond,
		Debounce:  20 * time.Millisecond,
		LongPress: 1000 * time.Millisecond,
		Read: func(string, int) bool {
			return now >= 1000 && now <= 2400
		},
		OnShortRelease: func(int) { t.Error("unexpected short release") },
		OnLongPress:    func(b int) { longAt = append(longAt, now) },
		OnLongRelease:  func(b int) { releaseAt = append(releaseAt, now) },
	}, []Button{{Pin: Pin{Chip: "gpiochip0", Line: 17}}})
	require.NoError(t, err)

	for ; now <= 3000; now += 10 {
		e.Update()
		if now < 2000 {
			assert.Equal(t, StateNone, e.State(0), "at %dms", now)
		} else {
			assert.Equal(t, StateLong, e.State(0), "at %dms", now)
		}
	}

	// The press locks at 1010ms and has been continuously held for the full
	// threshold at 2000ms. The release is accepted two ticks after the raw
	// level drops.
	assert.Equal(t, []int{2000}, longAt)
	assert.Equal(t, []int{2430}, releaseAt)
}

func TestTwoButtonsIndependent(t *testing.T) {
	type hit struct {
		at     int
		button int
	}

	now := 0
	var hits []hit

	e, err := New(Config{
		Tick:     10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Read: func(_ string, line int) bool {
			switch line {
			case 13:
				return now >= 10 && now <= 40
			case 5:
				return now >= 30 && now <= 50
			}
			return false
		},
		OnShortRelease: func(b int) { hits = append(hits, hit{at: now, button: b}) },
	}, []Button{
		{Pin: Pin{Chip: "gpiochip0", Line: 13}},
		{Pin: Pin{Chip: "gpiochip0", Line: 5}},
	})
	require.NoError(t, err)

	for ; now <= 200; now += 10 {
		e.Update()
	}

	assert.Equal(t, []hit{{at: 70, button: 0}, {at: 80, button: 1}}, hits)
	assert.Equal(t, StateShort, e.State(0))
	assert.Equal(t, StateShort, e.State(1))
}

func TestQueryOutOfRange(t *testing.T) {
	e, err := New(Config{Read: func(string, int) bool { return false }}, []Button{{}})
	require.NoError(t, err)

	assert.Equal(t, StateNone, e.State(1))
	assert.Equal(t, StateNone, e.State(255))
	assert.Equal(t, StateNone, e.State(-1))

	// Queries are idempotent between updates.
	e.Update()
	first := e.State(0)
	assert.Equal(t, first, e.State(0))
	assert.Equal(t, first, e.State(0))
}

func TestInitValidation(t *testing.T) {
	read := func(string, int) bool { return false }

	tt := []struct {
		name    string
		cfg     Config
		buttons []Button
		err     error
	}{
		{
			name:    "missing reader",
			cfg:     Config{},
			buttons: []Button{{}},
			err:     ErrNoReader,
		},
		{
			name:    "nil buttons",
			cfg:     Config{Read: read},
			buttons: nil,
			err:     ErrNoButtons,
		},
		{
			name:    "empty buttons",
			cfg:     Config{Read: read},
			buttons: []Button{},
			err:     ErrNoButtons,
		},
		{
			name:    "too many buttons",
			cfg:     Config{Read: read},
			buttons: make([]Button, 256),
			err:     ErrTooManyButtons,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New(tc.cfg, tc.buttons)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDefaults(t *testing.T) {
	e, err := New(Config{Read: func(string, int) bool { return false }}, []Button{{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTick, e.Tick())

	// A 300ms hold ends up short, an 1100ms hold ends up long, so the
	// default 20ms debounce and 1000ms threshold are both in effect.
	now := 0
	e, err = New(Config{
		Read: func(_ string, line int) bool {
			switch line {
			case 1:
				return now >= 10 && now <= 300
			case 2:
				return now >= 10 && now <= 1100
			}
			return false
		},
	}, []Button{
		{Pin: Pin{Line: 1}},
		{Pin: Pin{Line: 2}},
	})
	require.NoError(t, err)

	for ; now <= 1300; now += 10 {
		e.Update()
	}
	assert.Equal(t, StateShort, e.State(0))
	assert.Equal(t, StateLong, e.State(1))
}

func TestLongPressOverride(t *testing.T) {
	now := 0
	var longButtons []int

	// Both buttons are held for 500ms. Only the one with the shortened
	// threshold classifies as long; the other falls back to the 1s default.
	e, err := New(Config{
		Tick:     10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Read: func(_ string, line int) bool {
			return now >= 10 && now <= 500
		},
		OnLongPress: func(b int) { longButtons = append(longButtons, b) },
	}, []Button{
		{Pin: Pin{Line: 1}, LongPress: 200 * time.Millisecond},
		{Pin: Pin{Line: 2}},
	})
	require.NoError(t, err)

	for ; now <= 700; now += 10 {
		e.Update()
	}

	assert.Equal(t, []int{0}, longButtons)
	assert.Equal(t, StateLong, e.State(0))
	assert.Equal(t, StateShort, e.State(1))
}

func TestRepeatLongPress(t *testing.T) {
	run := func(repeat bool) []int {
		now := 0
		var longAt []int
		e, err := New(Config{
			Tick:            10 * time.Millisecond,
			Debounce:        20 * time.Millisecond,
			LongPress:       50 * time.Millisecond,
			RepeatLongPress: repeat,
			Read: func(string, int) bool {
				return now >= 10 && now <= 200
			},
			OnLongPress: func(int) { longAt = append(longAt, now) },
		}, []Button{{}})
		require.NoError(t, err)

		for ; now <= 300; now += 10 {
			e.Update()
		}
		return longAt
	}

	// Default: a single callback on the tick the threshold is reached.
	assert.Equal(t, []int{60}, run(false))

	// Repeat: one callback per tick for as long as the press is held.
	repeated := run(true)
	require.Len(t, repeated, 15)
	assert.Equal(t, 60, repeated[0])
	assert.Equal(t, 200, repeated[14])
}

func TestShortPulseFiltered(t *testing.T) {
	now := 0
	e, err := New(Config{
		Tick:     10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Read: func(string, int) bool {
			return now == 10
		},
		OnShortRelease: func(int) { t.Error("unexpected short release") },
		OnLongPress:    func(int) { t.Error("unexpected long press") },
		OnLongRelease:  func(int) { t.Error("unexpected long release") },
	}, []Button{{}})
	require.NoError(t, err)

	for ; now <= 200; now += 10 {
		e.Update()
		assert.Equal(t, StateNone, e.State(0))
	}
}

func TestBounceAccumulation(t *testing.T) {
	now := 0
	var firedAt []int

	// Two one-tick pulses: neither passes debounce on its own, but the
	// confirmation count integrates across the gap and locks on the second
	// pulse. A bouncy contact still registers as one press.
	e, err := New(Config{
		Tick:     10 * time.Millisecond,
		Debounce: 20 * time.Millisecond,
		Read: func(string, int) bool {
			return now == 10 || now == 30
		},
		OnShortRelease: func(int) { firedAt = append(firedAt, now) },
	}, []Button{{}})
	require.NoError(t, err)

	for ; now <= 200; now += 10 {
		e.Update()
	}

	assert.Equal(t, []int{60}, firedAt)
	assert.Equal(t, StateShort, e.State(0))
}

func TestUpdateDoesNotAllocate(t *testing.T) {
	pressed := false
	events := 0

	e, err := New(Config{
		Read:           func(string, int) bool { return pressed },
		OnShortRelease: func(int) { events++ },
		OnLongPress:    func(int) { events++ },
		OnLongRelease:  func(int) { events++ },
	}, make([]Button, 3))
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(1000, func() {
		pressed = !pressed
		e.Update()
	})
	assert.Zero(t, allocs)
}

func TestButtonStorageBorrowed(t *testing.T) {
	var lines []int
	buttons := []Button{{Pin: Pin{Line: 1}}}

	e, err := New(Config{
		Read: func(_ string, line int) bool {
			lines = append(lines, line)
			return false
		},
	}, buttons)
	require.NoError(t, err)

	e.Update()
	buttons[0].Pin.Line = 2
	e.Update()

	// The engine reads through the caller's slice rather than a copy.
	assert.Equal(t, []int{1, 2}, lines)
}
