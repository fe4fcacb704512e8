// Package mqtt publishes classified button events to a broker, so other
// systems on the network can react to deck presses.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/callebjorkell/button-deck/internal/button"
	log "github.com/sirupsen/logrus"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "buttondeck/events"

// Message is one classified press, ready for publishing.
type Message struct {
	Button string
	Index  int
	Event  button.EventType
	Time   time.Time
}

// Publisher sends button events to the broker. Publish failures must be
// reported, never crash the daemon.
type Publisher interface {
	Publish(m Message) error
	Close() error
}

// New returns a publisher for the given broker, or a disabled no-op
// publisher when the broker is left empty.
func New(broker, topic string) (Publisher, error) {
	if broker == "" {
		log.Info("No MQTT broker configured, event publishing is disabled")
		return disabled{}, nil
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return connect(broker, topic)
}

type disabled struct{}

func (disabled) Publish(Message) error { return nil }
func (disabled) Close() error          { return nil }

type payload struct {
	Button buttonPayload `json:"button"`
}

type buttonPayload struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

// FormatPayload creates the JSON payload for a button event.
func FormatPayload(m Message) ([]byte, error) {
	return json.Marshal(payload{
		Button: buttonPayload{
			Name:      m.Button,
			Index:     m.Index,
			Event:     m.Event.String(),
			Timestamp: m.Time.UTC().Format(time.RFC3339),
		},
	})
}
