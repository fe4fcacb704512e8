package button

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// The package level functions operate on a single process-wide engine, for
// callers that want the classic one-registry-per-program shape. Init must be
// called before Update or Get; calling them earlier is a misuse that is
// logged once and otherwise ignored.

var (
	std       *Engine
	uninitLog sync.Once
)

// Init replaces the process-wide engine. Any previous instance and its
// runtime state are discarded wholesale.
func Init(cfg Config, buttons []Button) error {
	e, err := New(cfg, buttons)
	if err != nil {
		return err
	}
	std = e
	return nil
}

// Update advances the process-wide engine by one tick.
func Update() {
	if std == nil {
		uninitLog.Do(func() { log.Warn("Button update called before Init") })
		return
	}
	std.Update()
}

// Get returns the last classification for the given button index on the
// process-wide engine, or StateNone when the engine is not initialized.
func Get(i int) State {
	if std == nil {
		uninitLog.Do(func() { log.Warn("Button query called before Init") })
		return StateNone
	}
	return std.State(i)
}
