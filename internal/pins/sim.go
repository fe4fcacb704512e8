//go:build !pi

package pins

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/callebjorkell/button-deck/internal/button"
	log "github.com/sirupsen/logrus"
)

const tapDuration = 100 * time.Millisecond

// New returns a signal driven simulator instead of touching hardware, so the
// daemon can be exercised on a dev machine. SIGHUP taps the target button,
// SIGUSR1 holds it (and releases it again) for long presses, and SIGUSR2
// moves the target to the next configured button.
func New(lines []Line) (Reader, error) {
	if len(lines) == 0 {
		return nil, errors.New("no lines to simulate")
	}

	s := &sim{
		pressed: make([]bool, len(lines)),
		index:   make(map[button.Pin]int, len(lines)),
		sigs:    make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	for i, l := range lines {
		s.index[l.Pin] = i
	}

	signal.Notify(s.sigs, syscall.SIGHUP, syscall.SIGUSR1, syscall.SIGUSR2)
	go s.listen()

	log.Info("Simulating button input: SIGHUP taps, SIGUSR1 toggles a hold, SIGUSR2 switches target")
	return s, nil
}

type sim struct {
	mu      sync.Mutex
	pressed []bool
	target  int

	index map[button.Pin]int
	sigs  chan os.Signal
	done  chan struct{}
}

func (s *sim) listen() {
	for {
		select {
		case <-s.done:
			return
		case sig := <-s.sigs:
			s.handle(sig)
		}
	}
}

func (s *sim) handle(sig os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch sig {
	case syscall.SIGHUP:
		i := s.target
		s.pressed[i] = true
		log.Infof("Tapping button %d", i)
		time.AfterFunc(tapDuration, func() {
			s.mu.Lock()
			s.pressed[i] = false
			s.mu.Unlock()
		})
	case syscall.SIGUSR1:
		s.pressed[s.target] = !s.pressed[s.target]
		log.Infof("Holding button %d: %v", s.target, s.pressed[s.target])
	case syscall.SIGUSR2:
		s.pressed[s.target] = false
		s.target = (s.target + 1) % len(s.pressed)
		log.Infof("Targeting button %d", s.target)
	}
}

func (s *sim) Pressed(chip string, pin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[button.Pin{Chip: chip, Line: pin}]
	if !ok {
		return false
	}
	return s.pressed[i]
}

func (s *sim) Close() error {
	signal.Stop(s.sigs)
	close(s.done)
	return nil
}
