package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/button-deck/internal/mqtt"
	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Tail classified deck events off the broker. Useful for wiring up consumers
// without a deck at hand.

var (
	broker = kingpin.Flag("broker", "Broker to connect to.").Default("tcp://localhost:1883").String()
	topic  = kingpin.Flag("topic", "Topic to subscribe to.").Default(mqtt.DefaultTopic).String()
)

func main() {
	kingpin.Parse()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	opts := paho.NewClientOptions().
		AddBroker(*broker).
		SetClientID(fmt.Sprintf("deck-events-%d", os.Getpid())).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal("Unable to connect: ", token.Error())
	}

	token := client.Subscribe(*topic, 0, func(_ paho.Client, m paho.Message) {
		fmt.Printf("%s %s\n", m.Topic(), m.Payload())
	})
	if token.Wait() && token.Error() != nil {
		log.Fatal("Unable to subscribe: ", token.Error())
	}
	log.Infof("Subscribed to %v on %v", *topic, *broker)

	<-signalChan
	client.Disconnect(250)
}
