package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/callebjorkell/button-deck/internal/button"
	"github.com/callebjorkell/button-deck/internal/lcd"
	"github.com/callebjorkell/button-deck/internal/mqtt"
	"github.com/callebjorkell/button-deck/internal/neopixel"
	"github.com/callebjorkell/button-deck/internal/pins"
	"github.com/callebjorkell/button-deck/internal/web"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// idleTimeout is how long the display keeps showing the last event before it
// falls back to the banner.
const idleTimeout = 10 * time.Second

// deckEvent is a classified engine event together with the presentation
// attributes of the button that produced it.
type deckEvent struct {
	button.Event
	Name  string
	Color uint32
}

// Notifier drives the light feedback for classified events.
type Notifier interface {
	Tap(color uint32)
	Hold(color uint32)
	Stop()
}

func startServer(confFile string) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	conf, err := readConfig(confFile)
	if err != nil {
		return err
	}

	reader, err := pins.New(conf.Lines())
	if err != nil {
		return fmt.Errorf("open pins: %w", err)
	}

	lcd.InitLCD()
	lcd.Banner()

	led := neopixel.NewLedController()
	led.Boot()

	pub, err := mqtt.New(conf.Mqtt.Broker, conf.Mqtt.Topic)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}

	board := web.NewBoard(conf.Names(), time.Now())
	var server *web.Server
	if conf.Listen != "" {
		server = web.New(conf.Listen, board)
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Status server failed: ", err)
			}
		}()
		log.Infof("Status page on http://%v/", web.AdvertiseAddr(conf.Listen))
	}

	events := make(chan deckEvent, 16)
	eng, err := button.New(button.Config{
		Tick:           conf.Tick(),
		Debounce:       conf.Debounce(),
		LongPress:      conf.LongPress(),
		Read:           reader.Pressed,
		OnShortRelease: send(events, conf, button.ShortRelease),
		OnLongPress:    send(events, conf, button.LongPress),
		OnLongRelease:  send(events, conf, button.LongRelease),
	}, conf.Deck())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eventListener(ctx, led, pub, board, events)

	quit := make(chan struct{})
	go runLoop(eng, board, clockwork.NewRealClock(), quit)

	<-signalChan
	close(quit)
	cancel()

	if server != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		server.Shutdown(shutdownCtx)
		done()
	}
	pub.Close()
	reader.Close()

	lcd.PrintLine(lcd.Line1, "  Sleeping...")
	lcd.Clear(lcd.Line2)
	led.Close()

	log.Info("Done...")
	return nil
}

// send wraps a queue write into an engine handler. Handlers run inside
// Update, so a full queue drops the event instead of stalling the tick loop.
func send(events chan<- deckEvent, conf *Config, t button.EventType) button.Handler {
	return func(i int) {
		e := deckEvent{
			Event: button.Event{Button: i, Type: t},
			Name:  conf.Buttons[i].Name,
			Color: conf.Buttons[i].Color,
		}
		select {
		case events <- e:
		default:
			log.Warnf("Event queue is full. Dropping %v.", e.Event)
		}
	}
}

func eventListener(ctx context.Context, led Notifier, pub mqtt.Publisher, board *web.Board, events <-chan deckEvent) {
	idle := time.NewTimer(idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-idle.C:
			lcd.Banner()
			led.Stop()
		case e := <-events:
			log.Infof("Event: %v", e.Event)
			lcd.Event(e.Name, e.Type)
			switch e.Type {
			case button.ShortRelease:
				led.Tap(e.Color)
			case button.LongPress:
				led.Hold(e.Color)
			case button.LongRelease:
				led.Stop()
			}

			now := time.Now()
			board.Record(e.Event, now)
			err := pub.Publish(mqtt.Message{Button: e.Name, Index: e.Button, Event: e.Type, Time: now})
			if err != nil {
				log.Warn("Unable to publish event: ", err)
			}

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(idleTimeout)
		}
	}
}

func runLoop(eng *button.Engine, board *web.Board, clk clockwork.Clock, quit <-chan struct{}) {
	states := make([]button.State, eng.Len())
	for {
		select {
		case <-quit:
			return
		default:
		}

		eng.Update()
		for i := range states {
			states[i] = eng.State(i)
		}
		board.SetStates(states)

		clk.Sleep(eng.Tick())
	}
}
