package mqtt

import "sync"

// Recorder is a Publisher that collects messages for test assertions. It is
// safe to read while a dispatcher goroutine is still publishing.
type Recorder struct {
	mu       sync.Mutex
	events   []Message
	payloads [][]byte
	err      error
	closed   bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	body, err := FormatPayload(m)
	if err != nil {
		return err
	}
	r.events = append(r.events, m)
	r.payloads = append(r.payloads, body)
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// FailWith makes all following Publish calls return err.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// Events returns a copy of the messages published so far.
func (r *Recorder) Events() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.events...)
}

// Payloads returns a copy of the formatted payloads published so far.
func (r *Recorder) Payloads() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.payloads...)
}

func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
