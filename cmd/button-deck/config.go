package main

import (
	"fmt"
	"os"
	"time"

	"github.com/callebjorkell/button-deck/internal/button"
	"github.com/callebjorkell/button-deck/internal/pins"
	"gopkg.in/yaml.v3"
)

const (
	defaultChip = "gpiochip0"
	maxButtons  = 255
)

type ButtonConfig struct {
	Name        string `yaml:"name"`
	Pin         int    `yaml:"pin"`
	Chip        string `yaml:"chip"`
	LongPressMs int    `yaml:"longPressMs"`
	Color       uint32 `yaml:"color"`
	Pull        string `yaml:"pull"`
}

type Config struct {
	TickMs      int    `yaml:"tickMs"`
	DebounceMs  int    `yaml:"debounceMs"`
	LongPressMs int    `yaml:"longPressMs"`
	Chip        string `yaml:"chip"`
	Listen      string `yaml:"listen"`
	Mqtt        struct {
		Broker string `yaml:"broker"`
		Topic  string `yaml:"topic"`
	} `yaml:"mqtt"`
	Buttons []ButtonConfig `yaml:"buttons"`
}

// Tick, Debounce and LongPress return zero when unset. The engine falls back
// to its own defaults for zero durations, so they are passed through as is.
func (c Config) Tick() time.Duration      { return time.Duration(c.TickMs) * time.Millisecond }
func (c Config) Debounce() time.Duration  { return time.Duration(c.DebounceMs) * time.Millisecond }
func (c Config) LongPress() time.Duration { return time.Duration(c.LongPressMs) * time.Millisecond }

// Deck translates the button list into engine descriptors.
func (c Config) Deck() []button.Button {
	deck := make([]button.Button, 0, len(c.Buttons))
	for _, b := range c.Buttons {
		deck = append(deck, button.Button{
			Pin:       button.Pin{Chip: b.Chip, Line: b.Pin},
			LongPress: time.Duration(b.LongPressMs) * time.Millisecond,
		})
	}
	return deck
}

// Lines translates the button list into reader lines.
func (c Config) Lines() []pins.Line {
	lines := make([]pins.Line, 0, len(c.Buttons))
	for _, b := range c.Buttons {
		lines = append(lines, pins.Line{
			Pin:    button.Pin{Chip: b.Chip, Line: b.Pin},
			PullUp: b.Pull != "down",
		})
	}
	return lines
}

func (c Config) Names() []string {
	names := make([]string, 0, len(c.Buttons))
	for _, b := range c.Buttons {
		names = append(names, b.Name)
	}
	return names
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Chip == "" {
		c.Chip = defaultChip
	}
	if len(c.Buttons) == 0 {
		return nil, fmt.Errorf("at least one button must be configured")
	}
	if len(c.Buttons) > maxButtons {
		return nil, fmt.Errorf("at most %d buttons are supported", maxButtons)
	}

	names := make(map[string]bool)
	taken := make(map[button.Pin]bool)
	for i, b := range c.Buttons {
		if len(b.Name) < 1 {
			return nil, fmt.Errorf("name of button must be specified for entry %d", i)
		}
		if b.Pin < 1 {
			return nil, fmt.Errorf("pin of button must be specified for entry %d", i)
		}
		if b.Color == 0 {
			return nil, fmt.Errorf("color of button must be specified for entry %d", i)
		}
		switch b.Pull {
		case "":
			c.Buttons[i].Pull = "up"
		case "up", "down":
		default:
			return nil, fmt.Errorf("pull of button must be up or down for entry %d", i)
		}
		if b.Chip == "" {
			c.Buttons[i].Chip = c.Chip
		}

		if names[b.Name] {
			return nil, fmt.Errorf("name %q is used by more than one button", b.Name)
		}
		names[b.Name] = true

		pin := button.Pin{Chip: c.Buttons[i].Chip, Line: b.Pin}
		if taken[pin] {
			return nil, fmt.Errorf("pin %d on %s is used by more than one button", pin.Line, pin.Chip)
		}
		taken[pin] = true
	}

	return c, nil
}

func readConfig(file string) (*Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return c, nil
}
