package button

import "fmt"

type EventType int

const (
	ShortRelease EventType = iota
	LongPress
	LongRelease
)

func (t EventType) String() string {
	switch t {
	case ShortRelease:
		return "short release"
	case LongPress:
		return "long press"
	case LongRelease:
		return "long release"
	}
	return "unknown"
}

// Event pairs a classified transition with the button that produced it. The
// engine itself only fires plain callbacks; Event is the value the daemon
// pushes through its dispatch channel.
type Event struct {
	Button int
	Type   EventType
}

func (e Event) String() string {
	return fmt.Sprintf("Button %d: %v", e.Button, e.Type)
}
