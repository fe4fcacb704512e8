package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

type pahoPublisher struct {
	client paho.Client
	topic  string
}

func connect(broker, topic string) (*pahoPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("button-deck").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	log.Infof("Connected to MQTT broker %v, publishing on %v", broker, topic)
	return &pahoPublisher{client: client, topic: topic}, nil
}

// Publish sends the event with QoS 0; a missed press notification is not
// worth blocking the dispatcher for.
func (p *pahoPublisher) Publish(m Message) error {
	body, err := FormatPayload(m)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, body)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *pahoPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
